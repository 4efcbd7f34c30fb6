package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// LineInput -> satu baris pesanan dari customer
type LineInput struct {
	ItemID   string `json:"id"`
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity"`
}

// AttachOptions -> data order yang ikut ditulis saat item dikunci
type AttachOptions struct {
	OrderType   models.OrderType
	Note        string
	LastOrderID string
}

// OrderStore menyimpan order, baris order dan repeat chain
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// CreateOrder -> order baru untuk satu meja, status INITIALISED
func (s *OrderStore) CreateOrder(ctx context.Context, cafeID string, tableNumber int) (*models.Order, error) {
	order := models.Order{
		CafeID:      cafeID,
		TableNumber: tableNumber,
		Status:      models.StatusInitialised,
		OrderType:   models.OrderTypeDineIn,
		Amount:      decimal.Zero,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, utils.Internal(fmt.Errorf("failed to create order: %w", err))
	}
	return &order, nil
}

// AttachItems -> tulis baris order, amount, status ORDERED dan repeat chain dalam satu transaksi
func (s *OrderStore) AttachItems(ctx context.Context, orderID string, lines []LineInput, opts AttachOptions) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, utils.ErrNoItems
	}
	for i, line := range lines {
		if line.ItemID == "" {
			return nil, utils.Validation(fmt.Sprintf("items[%d].id", i), "Item id is required")
		}
		if line.Quantity < 1 {
			return nil, utils.Validation(fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1")
		}
	}
	if opts.OrderType == "" {
		opts.OrderType = models.OrderTypeDineIn
	}
	if !opts.OrderType.Valid() {
		return nil, utils.Validation("orderType", "Invalid order type")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return storeError(err, "order")
		}
		if order.Status != models.StatusInitialised {
			return utils.ErrOrderLocked
		}

		amount := decimal.Zero
		orderLines := make([]models.OrderItem, 0, len(lines))
		for i, line := range lines {
			var item models.Item
			if err := tx.First(&item, "id = ?", line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("item %s: %w", line.ItemID, utils.ErrInvalidItem)
				}
				return utils.Internal(err)
			}
			if item.CafeID != order.CafeID || !item.InStock {
				return fmt.Errorf("item %s: %w", line.ItemID, utils.ErrInvalidItem)
			}

			orderLine := models.OrderItem{
				OrderID:  order.ID,
				ItemID:   item.ID,
				Position: i,
				Variant:  line.Variant,
				Quantity: line.Quantity,
				Price:    item.Price,
			}
			amount = amount.Add(orderLine.Subtotal())
			orderLines = append(orderLines, orderLine)
		}

		if err := tx.Create(&orderLines).Error; err != nil {
			return utils.Internal(fmt.Errorf("failed to create order lines: %w", err))
		}

		// conditional write, order yang sudah ditempatkan request lain tidak ditimpa
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.StatusInitialised).
			Updates(map[string]interface{}{
				"amount":     amount,
				"status":     models.StatusOrdered,
				"order_type": opts.OrderType,
				"note":       opts.Note,
			})
		if res.Error != nil {
			return utils.Internal(fmt.Errorf("failed to place order: %w", res.Error))
		}
		if res.RowsAffected == 0 {
			return utils.ErrOrderLocked
		}

		for _, line := range orderLines {
			if err := tx.Model(&models.Item{}).
				Where("id = ?", line.ItemID).
				UpdateColumn("ordered_count", gorm.Expr("ordered_count + ?", line.Quantity)).Error; err != nil {
				return utils.Internal(err)
			}
		}

		return appendToChain(tx, &order, opts.LastOrderID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

// appendToChain -> sambung ke chain milik lastOrderID, atau buat chain baru
func appendToChain(tx *gorm.DB, order *models.Order, lastOrderID string) error {
	if lastOrderID != "" && lastOrderID != order.ID {
		var last models.RepeatOrderEntry
		err := tx.Where("order_id = ?", lastOrderID).First(&last).Error
		switch {
		case err == nil:
			var chain models.RepeatOrderChain
			if err := tx.First(&chain, "id = ?", last.ChainID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.Internal(err)
			}
			// chain dari cafe lain tidak disambung
			if chain.ID != "" && chain.CafeID == order.CafeID {
				var size int64
				if err := tx.Model(&models.RepeatOrderEntry{}).Where("chain_id = ?", chain.ID).Count(&size).Error; err != nil {
					return utils.Internal(err)
				}
				entry := models.RepeatOrderEntry{ChainID: chain.ID, OrderID: order.ID, Position: int(size)}
				if err := tx.Create(&entry).Error; err != nil {
					return utils.Internal(fmt.Errorf("failed to append repeat order: %w", err))
				}
				return nil
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return utils.Internal(err)
		}
	}

	chain := models.RepeatOrderChain{
		CafeID:  order.CafeID,
		Entries: []models.RepeatOrderEntry{{OrderID: order.ID, Position: 0}},
	}
	if err := tx.Create(&chain).Error; err != nil {
		return utils.Internal(fmt.Errorf("failed to create repeat order chain: %w", err))
	}
	return nil
}

// BindCustomer -> hubungkan order dengan customer terdaftar
func (s *OrderStore) BindCustomer(ctx context.Context, orderID, customerID string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("customer_id", customerID)
	if res.Error != nil {
		return utils.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("order")
	}
	return nil
}

// GetOrder -> order beserta baris (urut posisi) dan menu item
func (s *OrderStore) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := withLines(s.db.WithContext(ctx)).
		Preload("Customer").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, storeError(err, "order")
	}
	return &order, nil
}

// ChainFor -> semua order dalam chain yang memuat orderID, urut posisi
func (s *OrderStore) ChainFor(ctx context.Context, orderID string) ([]models.Order, error) {
	db := s.db.WithContext(ctx)

	var entry models.RepeatOrderEntry
	if err := db.Where("order_id = ?", orderID).First(&entry).Error; err != nil {
		return nil, storeError(err, "repeat order")
	}

	var entries []models.RepeatOrderEntry
	if err := db.Where("chain_id = ?", entry.ChainID).Order("position ASC").Find(&entries).Error; err != nil {
		return nil, utils.Internal(err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.OrderID)
	}

	var found []models.Order
	if err := withLines(db).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, utils.Internal(err)
	}

	byID := make(map[string]models.Order, len(found))
	for _, o := range found {
		byID[o.ID] = o
	}
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("OrderItems.Item")
}
