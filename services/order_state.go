package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

const boardDateLayout = "Jan 02 2006"

// TransitionPolicy -> aturan perpindahan status order
type TransitionPolicy interface {
	Allow(current, target models.OrderStatus) error
}

// WhitelistPolicy -> target harus salah satu token board, order belum final dan sudah ditempatkan.
// Urutan maju tidak dicek (COMPLETED -> PREPARING ditolak karena terminal, PREPARED -> PREPARING diterima).
type WhitelistPolicy struct{}

var boardTargets = map[models.OrderStatus]bool{
	models.StatusPreparing: true,
	models.StatusRejected:  true,
	models.StatusPrepared:  true,
	models.StatusServed:    true,
	models.StatusCompleted: true,
}

func (WhitelistPolicy) Allow(current, target models.OrderStatus) error {
	if !boardTargets[target] {
		return utils.ErrInvalidStatus
	}
	if current == models.StatusInitialised || current.Terminal() {
		return utils.ErrInvalidStatus
	}
	return nil
}

// ForwardPolicy -> hanya langkah maju satu per satu, REJECTED dari ORDERED/PREPARING
type ForwardPolicy struct{}

var forwardGraph = map[models.OrderStatus][]models.OrderStatus{
	models.StatusOrdered:   {models.StatusPreparing, models.StatusRejected},
	models.StatusPreparing: {models.StatusPrepared, models.StatusRejected},
	models.StatusPrepared:  {models.StatusServed},
	models.StatusServed:    {models.StatusCompleted},
}

func (ForwardPolicy) Allow(current, target models.OrderStatus) error {
	for _, next := range forwardGraph[current] {
		if next == target {
			return nil
		}
	}
	return utils.ErrInvalidStatus
}

// PolicyFor -> nama policy dari config
func PolicyFor(name string) (TransitionPolicy, error) {
	switch name {
	case "", "whitelist":
		return WhitelistPolicy{}, nil
	case "forward":
		return ForwardPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown transition policy %q", name)
}

// StatusNotifier -> kirim notifikasi ke subscriber sebuah topik
type StatusNotifier interface {
	NotifyTopic(ctx context.Context, topic, title, body string) error
}

// OrderSummary -> satu baris di order board admin
type OrderSummary struct {
	ID          string             `json:"id"`
	Status      models.OrderStatus `json:"status"`
	TableNumber int                `json:"table_number"`
	Amount      decimal.Decimal    `json:"amount"`
	OrderType   models.OrderType   `json:"order_type"`
	CreatedAt   time.Time          `json:"created_at"`
	User        string             `json:"user,omitempty"`
	UserPhone   string             `json:"user_phone,omitempty"`
	Items       int                `json:"items"`
}

// BoardDay -> satu tanggal di order board; slice board urut tanggal terbaru
type BoardDay struct {
	Date     string                                `json:"date"`
	Statuses map[models.OrderStatus][]OrderSummary `json:"statuses"`
}

// TableBucket -> order hari ini untuk satu meja
type TableBucket struct {
	TableNumber int            `json:"table_number"`
	Orders      []models.Order `json:"orders"`
}

// BoardStatuses -> token yang boleh dipakai untuk table board
var BoardStatuses = map[models.OrderStatus]bool{
	models.StatusOrdered:   true,
	models.StatusPreparing: true,
	models.StatusRejected:  true,
	models.StatusPrepared:  true,
	models.StatusServed:    true,
	models.StatusCompleted: true,
}

type StateMachine struct {
	db       *gorm.DB
	policy   TransitionPolicy
	loc      *time.Location
	notifier StatusNotifier
	now      func() time.Time
}

func NewStateMachine(db *gorm.DB, policy TransitionPolicy, loc *time.Location, notifier StatusNotifier) *StateMachine {
	if policy == nil {
		policy = WhitelistPolicy{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &StateMachine{db: db, policy: policy, loc: loc, notifier: notifier, now: time.Now}
}

// Advance -> ubah status order milik cafe dengan satu conditional update
func (m *StateMachine) Advance(ctx context.Context, cafeID, orderID string, target models.OrderStatus) (models.OrderStatus, error) {
	db := m.db.WithContext(ctx)

	var order models.Order
	if err := db.Select("id", "cafe_id", "status").
		First(&order, "id = ? AND cafe_id = ?", orderID, cafeID).Error; err != nil {
		return "", storeError(err, "order")
	}

	if err := m.policy.Allow(order.Status, target); err != nil {
		return order.Status, err
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", target)
	if res.Error != nil {
		return order.Status, utils.Internal(fmt.Errorf("failed to update order status: %w", res.Error))
	}
	if res.RowsAffected == 0 {
		// status sudah diubah request lain sejak dibaca
		return order.Status, utils.ErrInvalidStatus
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       target,
	}).Info("Order status updated")

	if m.notifier != nil {
		title := "Order update"
		body := fmt.Sprintf("Your order is %s", target)
		if err := m.notifier.NotifyTopic(ctx, order.ID, title, body); err != nil {
			utils.ErrorLogger.WithField("order_id", order.ID).Errorf("Error sending status notification: %v", err)
		}
	}
	return target, nil
}

// GroupByStatusAndDate -> tanggal (zona cafe) -> status -> ringkasan, tanggal dan order terbaru di depan
func (m *StateMachine) GroupByStatusAndDate(ctx context.Context, cafeID string) ([]BoardDay, error) {
	var orders []models.Order
	err := m.db.WithContext(ctx).
		Preload("Customer").
		Preload("OrderItems").
		Where("cafe_id = ? AND status <> ?", cafeID, models.StatusInitialised).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, utils.Internal(err)
	}

	board := make([]BoardDay, 0)
	index := make(map[string]int)
	for _, o := range orders {
		date := o.CreatedAt.In(m.loc).Format(boardDateLayout)
		i, ok := index[date]
		if !ok {
			i = len(board)
			index[date] = i
			board = append(board, BoardDay{Date: date, Statuses: make(map[models.OrderStatus][]OrderSummary)})
		}
		day := board[i].Statuses
		day[o.Status] = append(day[o.Status], summarize(o))
	}
	return board, nil
}

func summarize(o models.Order) OrderSummary {
	s := OrderSummary{
		ID:          o.ID,
		Status:      o.Status,
		TableNumber: o.TableNumber,
		Amount:      o.Amount,
		OrderType:   o.OrderType,
		CreatedAt:   o.CreatedAt,
		Items:       len(o.OrderItems),
	}
	if o.Customer != nil {
		s.User = o.Customer.Name
		s.UserPhone = o.Customer.Phone
	}
	return s
}

// GroupByTable -> order hari ini dengan status tertentu, dikelompokkan per meja (urut nomor meja)
func (m *StateMachine) GroupByTable(ctx context.Context, cafeID string, status models.OrderStatus) ([]TableBucket, error) {
	if !BoardStatuses[status] {
		return nil, utils.ErrInvalidStatus
	}

	now := m.now().In(m.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, m.loc)

	var orders []models.Order
	err := withLines(m.db.WithContext(ctx)).
		Preload("Customer").
		Where("cafe_id = ? AND status = ? AND created_at >= ?", cafeID, status, startOfDay.UTC()).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, utils.Internal(err)
	}

	byTable := make(map[int]*TableBucket)
	for _, o := range orders {
		bucket, ok := byTable[o.TableNumber]
		if !ok {
			bucket = &TableBucket{TableNumber: o.TableNumber}
			byTable[o.TableNumber] = bucket
		}
		bucket.Orders = append(bucket.Orders, o)
	}

	buckets := make([]TableBucket, 0, len(byTable))
	for _, b := range byTable {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].TableNumber < buckets[j].TableNumber
	})
	return buckets, nil
}
