package kds

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/cafe-ordering/models"
)

// NewOrderEvent -> payload yang diterima admin display saat order ditempatkan
type NewOrderEvent struct {
	Items       []EventItem        `json:"items"`
	OrderID     string             `json:"orderId"`
	TableNumber int                `json:"tableNumber"`
	OrderType   models.OrderType   `json:"orderType"`
	Status      models.OrderStatus `json:"status"`
}

type EventItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Variant  string          `json:"variant"`
}

// NewOrderEventFrom -> bangun event dari order yang sudah berisi item (Item ter-preload)
func NewOrderEventFrom(order *models.Order) NewOrderEvent {
	items := make([]EventItem, 0, len(order.OrderItems))
	for _, line := range order.OrderItems {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		items = append(items, EventItem{
			Name:     name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Variant:  line.Variant,
		})
	}
	return NewOrderEvent{
		Items:       items,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		OrderType:   order.OrderType,
		Status:      models.StatusOrdered,
	}
}
