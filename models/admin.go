package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin -> pemilik/staff cafe yang login ke dashboard
type Admin struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(15)" json:"phone"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CafeID    *string   `gorm:"type:varchar(36);index" json:"cafe_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}
