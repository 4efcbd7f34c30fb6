package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer -> pelanggan yang mendaftar dari halaman order (nomor HP unik)
type Customer struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	Phone     string    `gorm:"type:varchar(15);uniqueIndex;not null" json:"phone"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	PushToken string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}
