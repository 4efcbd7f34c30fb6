package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem -> satu baris pesanan. Price adalah snapshot harga menu saat order ditempatkan.
type OrderItem struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID string `gorm:"type:varchar(36);not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     *Order          `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID    string          `gorm:"type:varchar(36);not null;index" json:"item_id"`
	Item      *Item           `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"item,omitempty"`
	Position  int             `gorm:"not null" json:"position"`
	Variant   string          `gorm:"type:varchar(100)" json:"variant"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Rating    *int            `json:"rating,omitempty"`
	Review    *string         `gorm:"type:text" json:"review,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = newID()
	}
	return nil
}

// Subtotal -> price * quantity
func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
