package models

import (
	"time"

	"gorm.io/gorm"
)

type Cafe struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Address     string    `gorm:"type:varchar(255)" json:"address"`
	City        string    `gorm:"type:varchar(100)" json:"city"`
	State       string    `gorm:"type:varchar(100)" json:"state"`
	Pincode     string    `gorm:"type:varchar(10)" json:"pincode"`
	Phone       string    `gorm:"type:varchar(15)" json:"phone"`
	Email       string    `gorm:"type:varchar(100)" json:"email"`
	ReviewLink  string    `gorm:"type:varchar(255)" json:"review_link"`
	OpenStatus  bool      `gorm:"not null;default:false" json:"open_status"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	RatingCount int       `gorm:"not null;default:0" json:"rating_count"`
	Items       []Item    `gorm:"foreignKey:CafeID" json:"items,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Cafe) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}
