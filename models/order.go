package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusInitialised OrderStatus = "INITIALISED" // sesi meja dibuat
	StatusOrdered     OrderStatus = "ORDERED"
	StatusPreparing   OrderStatus = "PREPARING"
	StatusPrepared    OrderStatus = "PREPARED"
	StatusServed      OrderStatus = "SERVED"
	StatusCompleted   OrderStatus = "COMPLETED"
	StatusRejected    OrderStatus = "REJECTED"
)

// Terminal -> status akhir, tidak bisa berubah lagi
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINEIN"
	OrderTypeTakeaway OrderType = "TAKEAWAY"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// Valid -> hanya tipe yang dikenal
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

type Order struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	CafeID      string          `gorm:"type:varchar(36);not null;index" json:"cafe_id"`
	Cafe        *Cafe           `gorm:"foreignKey:CafeID" json:"-"`
	TableNumber int             `gorm:"not null" json:"table_number"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'INITIALISED';index" json:"status"`
	OrderType   OrderType       `gorm:"type:varchar(20);not null;default:'DINEIN'" json:"order_type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	CustomerID  *string         `gorm:"type:varchar(36);index" json:"customer_id,omitempty"`
	Customer    *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Note        string          `gorm:"type:text" json:"note"`
	Rating      *int            `json:"rating,omitempty"`
	Review      *string         `gorm:"type:text" json:"review,omitempty"`
	OrderItems  []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Status == "" {
		o.Status = StatusInitialised
	}
	if o.OrderType == "" {
		o.OrderType = OrderTypeDineIn
	}
	return nil
}
