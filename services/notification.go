package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Push -> satu pesan notifikasi untuk sekumpulan token
type Push struct {
	Tokens []string          `json:"tokens"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// Dispatcher -> pengiriman push ke luar proses, best effort
type Dispatcher interface {
	Dispatch(ctx context.Context, push Push) error
	Close() error
}

// RabbitDispatcher publish push ke fanout exchange, worker push membaca dari sana
type RabbitDispatcher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbitDispatcher(url, exchange string) (*RabbitDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // args
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &RabbitDispatcher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (r *RabbitDispatcher) Dispatch(ctx context.Context, push Push) error {
	body, err := json.Marshal(push)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	// amqp.Channel tidak aman dipakai publish bersamaan
	r.mu.Lock()
	defer r.mu.Unlock()
	err = r.ch.PublishWithContext(
		ctx,
		r.exchange, // exchange
		"",         // fanout ignores routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish push message: %w", err)
	}
	return nil
}

func (r *RabbitDispatcher) Close() error {
	if err := r.ch.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

// LogDispatcher -> dipakai saat AMQP_URL kosong, push hanya ditulis ke log
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(ctx context.Context, push Push) error {
	utils.InfoLogger.WithFields(logrus.Fields{
		"tokens": len(push.Tokens),
		"title":  push.Title,
	}).Info("Push notification (log only)")
	return nil
}

func (LogDispatcher) Close() error { return nil }

// AlertInput -> payload kirim notifikasi topik dari dashboard
type AlertInput struct {
	Title    string
	Body     string
	Topic    string
	Discount string
	Expiry   time.Time
}

// NotificationService -> subscription token, alert cafe dan dispatch push
type NotificationService struct {
	db         *gorm.DB
	dispatcher Dispatcher
}

func NewNotificationService(db *gorm.DB, dispatcher Dispatcher) *NotificationService {
	if dispatcher == nil {
		dispatcher = LogDispatcher{}
	}
	return &NotificationService{db: db, dispatcher: dispatcher}
}

// Subscribe -> daftarkan token ke beberapa topik, duplikat diabaikan
func (n *NotificationService) Subscribe(ctx context.Context, token string, topics ...string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return utils.Validation("token", "Invalid Token")
	}
	db := n.db.WithContext(ctx)
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		sub := models.Subscription{Token: token, Topic: topic}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
			return utils.Internal(fmt.Errorf("failed to subscribe topic %s: %w", topic, err))
		}
	}
	return nil
}

func (n *NotificationService) tokensFor(ctx context.Context, topic string) ([]string, error) {
	var tokens []string
	err := n.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("topic = ?", topic).
		Distinct().
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, utils.Internal(err)
	}
	return tokens, nil
}

// NotifyTopic -> push ke semua subscriber topik, tanpa subscriber berarti tidak ada yang dikirim
func (n *NotificationService) NotifyTopic(ctx context.Context, topic, title, body string) error {
	tokens, err := n.tokensFor(ctx, topic)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	return n.dispatcher.Dispatch(ctx, Push{
		Tokens: tokens,
		Title:  title,
		Body:   body,
		Data:   map[string]string{"topic": topic},
	})
}

// SendTopicNotification -> kirim promo/alert cafe; topik kosong berarti semua subscriber cafe
func (n *NotificationService) SendTopicNotification(ctx context.Context, cafeID string, in AlertInput) (*models.Alert, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.Validation("title", "Title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, utils.Validation("body", "Body is required")
	}
	if in.Expiry.IsZero() {
		return nil, utils.Validation("expiry", "Expiry is required")
	}
	topic := in.Topic
	if topic == "" {
		topic = cafeID
	}

	tokens, err := n.tokensFor(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 0 {
		push := Push{
			Tokens: tokens,
			Title:  in.Title,
			Body:   in.Body,
			Data: map[string]string{
				"topic":    topic,
				"cafe":     cafeID,
				"discount": in.Discount,
				"expiry":   in.Expiry.UTC().Format(time.RFC3339),
			},
		}
		// gagal kirim tidak membatalkan alert
		if err := n.dispatcher.Dispatch(ctx, push); err != nil {
			utils.ErrorLogger.WithField("topic", topic).Errorf("Error sending notifications: %v", err)
		}
	}

	alert := models.Alert{
		CafeID:   cafeID,
		Title:    in.Title,
		Body:     in.Body,
		Topic:    topic,
		Discount: in.Discount,
		Expiry:   in.Expiry.UTC(),
	}
	if err := n.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return nil, utils.Internal(fmt.Errorf("failed to store alert: %w", err))
	}
	return &alert, nil
}

func (n *NotificationService) FetchNotifications(ctx context.Context, cafeID string) ([]models.Alert, error) {
	alerts := []models.Alert{}
	if err := n.db.WithContext(ctx).Where("cafe_id = ?", cafeID).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return alerts, nil
}

// CafeFromAlert -> halaman publik dari link notifikasi: detail cafe + alert-nya
func (n *NotificationService) CafeFromAlert(ctx context.Context, cafeID string) (*models.Cafe, []models.Alert, error) {
	var cafe models.Cafe
	if err := n.db.WithContext(ctx).First(&cafe, "id = ?", cafeID).Error; err != nil {
		return nil, nil, storeError(err, "cafe")
	}
	alerts, err := n.FetchNotifications(ctx, cafeID)
	if err != nil {
		return nil, nil, err
	}
	return &cafe, alerts, nil
}
