package models

import (
	"time"

	"gorm.io/gorm"
)

// Alert -> notifikasi topik yang pernah dikirim cafe
type Alert struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CafeID    string    `gorm:"type:varchar(36);not null;index" json:"cafe_id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Topic     string    `gorm:"type:varchar(64);not null" json:"topic"`
	Discount  string    `gorm:"type:varchar(50)" json:"discount,omitempty"`
	Expiry    time.Time `gorm:"not null" json:"expiry"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

// Subscription -> token push customer yang mengikuti sebuah topik (order id atau cafe id)
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_token_topic" json:"token"`
	Topic     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_token_topic;index" json:"topic"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
