package services

import (
	"context"

	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// CafeGate -> cek openStatus cafe sebelum sesi, order dan baca status
type CafeGate struct {
	db *gorm.DB
}

func NewCafeGate(db *gorm.DB) *CafeGate {
	return &CafeGate{db: db}
}

func (g *CafeGate) EnsureOpen(ctx context.Context, cafeID string) error {
	var cafe models.Cafe
	if err := g.db.WithContext(ctx).Select("id", "open_status").First(&cafe, "id = ?", cafeID).Error; err != nil {
		return storeError(err, "cafe")
	}
	if !cafe.OpenStatus {
		return utils.ErrCafeClosed
	}
	return nil
}
