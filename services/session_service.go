package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/cafe-ordering/kds"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// OrderBroadcaster -> tujuan event order baru (admin display)
type OrderBroadcaster interface {
	BroadcastNewOrder(event kds.NewOrderEvent) int
}

// PlaceOrderInput -> isi keranjang saat customer menekan "place order"
type PlaceOrderInput struct {
	Lines       []LineInput
	OrderType   models.OrderType
	Note        string
	LastOrderID string
}

// SignupInput -> data customer dari halaman order
type SignupInput struct {
	Name  string
	Phone string
	City  string
	Token string
}

type SessionService struct {
	db          *gorm.DB
	store       *OrderStore
	gate        *CafeGate
	tokens      *utils.Tokens
	broadcaster OrderBroadcaster
	subs        *NotificationService
}

func NewSessionService(db *gorm.DB, store *OrderStore, gate *CafeGate, tokens *utils.Tokens, broadcaster OrderBroadcaster, subs *NotificationService) *SessionService {
	return &SessionService{
		db:          db,
		store:       store,
		gate:        gate,
		tokens:      tokens,
		broadcaster: broadcaster,
		subs:        subs,
	}
}

// CreateSession -> scan QR meja: order INITIALISED baru + token sesi
func (s *SessionService) CreateSession(ctx context.Context, cafeID string, tableNumber int) (string, *models.Order, error) {
	if cafeID == "" {
		return "", nil, utils.Validation("cafe", "Cafe is required")
	}
	if tableNumber < 1 {
		return "", nil, utils.Validation("table", "Table number must be at least 1")
	}
	if err := s.gate.EnsureOpen(ctx, cafeID); err != nil {
		return "", nil, err
	}

	order, err := s.store.CreateOrder(ctx, cafeID, tableNumber)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateSessionToken(order.ID, cafeID)
	if err != nil {
		return "", nil, utils.Internal(fmt.Errorf("failed to sign session token: %w", err))
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"cafe_id":  cafeID,
		"table":    tableNumber,
	}).Info("Session created")
	return token, order, nil
}

// PlaceOrder -> kunci item order, lalu kirim satu event ke admin display
func (s *SessionService) PlaceOrder(ctx context.Context, orderID string, in PlaceOrderInput) (*models.Order, error) {
	var current models.Order
	if err := s.db.WithContext(ctx).Select("id", "cafe_id").First(&current, "id = ?", orderID).Error; err != nil {
		return nil, storeError(err, "order")
	}
	if err := s.gate.EnsureOpen(ctx, current.CafeID); err != nil {
		return nil, err
	}

	order, err := s.store.AttachItems(ctx, orderID, in.Lines, AttachOptions{
		OrderType:   in.OrderType,
		Note:        in.Note,
		LastOrderID: normalizeOrderRef(in.LastOrderID),
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		delivered := s.broadcaster.BroadcastNewOrder(kds.NewOrderEventFrom(order))
		utils.InfoLogger.WithFields(logrus.Fields{
			"order_id":  order.ID,
			"amount":    utils.FormatCurrencyINR(order.Amount),
			"delivered": delivered,
		}).Info("Order placed")
	}
	return order, nil
}

// normalizeOrderRef -> frontend kadang mengirim "undefined" / "null" sebagai string
func normalizeOrderRef(id string) string {
	id = strings.TrimSpace(id)
	if id == "undefined" || id == "null" {
		return ""
	}
	return id
}

func (s *SessionService) OrderStatus(ctx context.Context, orderID string) (models.OrderStatus, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Select("id", "status").First(&order, "id = ?", orderID).Error; err != nil {
		return "", storeError(err, "order")
	}
	return order.Status, nil
}

func (s *SessionService) FetchOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.store.GetOrder(ctx, orderID)
}

// FetchChain -> semua order satu kunjungan meja
func (s *SessionService) FetchChain(ctx context.Context, lastOrderID string) ([]models.Order, error) {
	lastOrderID = normalizeOrderRef(lastOrderID)
	if lastOrderID == "" {
		return nil, utils.Validation("orderId", "Order id is required")
	}
	return s.store.ChainFor(ctx, lastOrderID)
}

// UserSignup -> buat/ambil customer berdasarkan nomor HP, ikat ke order, subscribe topik order dan cafe
func (s *SessionService) UserSignup(ctx context.Context, orderID, cafeID string, in SignupInput) (*models.Customer, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Phone == "" {
		return nil, utils.Validation("phone", "Phone is required")
	}

	var customer models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("phone = ?", in.Phone).First(&customer).Error
		switch {
		case err == nil:
			if in.Token != "" && in.Token != customer.PushToken {
				customer.PushToken = in.Token
				if err := tx.Model(&customer).Update("push_token", in.Token).Error; err != nil {
					return utils.Internal(err)
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			customer = models.Customer{Name: in.Name, Phone: in.Phone, City: in.City, PushToken: in.Token}
			if err := tx.Create(&customer).Error; err != nil {
				return utils.Internal(fmt.Errorf("failed to create customer: %w", err))
			}
		default:
			return utils.Internal(err)
		}

		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("customer_id", customer.ID)
		if res.Error != nil {
			return utils.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NotFound("order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.subs != nil && customer.PushToken != "" {
		if err := s.subs.Subscribe(ctx, customer.PushToken, orderID, cafeID); err != nil {
			utils.ErrorLogger.WithField("customer_id", customer.ID).Errorf("Error subscribing customer: %v", err)
		}
	}
	return &customer, nil
}
