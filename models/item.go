package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item -> satu menu milik sebuah cafe
type Item struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	CafeID       string          `gorm:"type:varchar(36);not null;index" json:"cafe_id"`
	Category     string          `gorm:"type:varchar(100);not null;index" json:"category"`
	SubCategory  string          `gorm:"type:varchar(100)" json:"sub_category"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Variant      string          `gorm:"type:varchar(100)" json:"variant"`
	FoodChoice   string          `gorm:"type:varchar(100)" json:"food_choice"`
	Recommended  bool            `gorm:"not null;default:false" json:"recommended"`
	InStock      bool            `gorm:"not null" json:"in_stock"`
	Image        string          `gorm:"type:text" json:"image"`
	Rating       float64         `gorm:"not null;default:0" json:"rating"`
	RatingCount  int             `gorm:"not null;default:0" json:"rating_count"`
	OrderedCount int             `gorm:"not null;default:0" json:"ordered_count"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}
