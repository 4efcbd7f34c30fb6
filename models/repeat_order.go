package models

import (
	"time"

	"gorm.io/gorm"
)

// RepeatOrderChain -> kumpulan order dari satu kunjungan meja yang sama
type RepeatOrderChain struct {
	ID        string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	CafeID    string             `gorm:"type:varchar(36);not null;index" json:"cafe_id"`
	Entries   []RepeatOrderEntry `gorm:"foreignKey:ChainID" json:"entries,omitempty"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null" json:"updated_at"`
}

func (r *RepeatOrderChain) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

// RepeatOrderEntry -> satu order hanya boleh muncul di satu chain (unique index)
type RepeatOrderEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChainID   string    `gorm:"type:varchar(36);not null;index" json:"chain_id"`
	OrderID   string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"order_id"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
