package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewLine -> satu menu yang bisa diberi rating setelah order selesai
type ReviewLine struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Rating *int   `json:"rating"`
}

type ReviewSheet struct {
	ItemsToReview []ReviewLine `json:"itemsToReview"`
	Order         string       `json:"order"`
}

// RatingService -> rating order/menu dengan rata-rata berjalan.
// Dua rating bersamaan untuk cafe/menu yang sama bisa kehilangan satu increment (read-modify-write tanpa CAS).
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

func validRating(r int) bool {
	return r >= minRating && r <= maxRating
}

// rollingAverage -> (avg*count + r) / (count+1)
func rollingAverage(avg float64, count int, r int) float64 {
	return (avg*float64(count) + float64(r)) / float64(count+1)
}

// AddOrderRating -> rating order + update rata-rata cafe, return rata-rata baru
func (s *RatingService) AddOrderRating(ctx context.Context, orderID string, rating int) (float64, error) {
	if !validRating(rating) {
		return 0, utils.ErrInvalidRating
	}

	var newAvg float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Select("id", "cafe_id", "status", "rating").First(&order, "id = ?", orderID).Error; err != nil {
			return storeError(err, "order")
		}
		if order.Status != models.StatusCompleted {
			return utils.ErrNotCompleted
		}
		if order.Rating != nil {
			return utils.ErrAlreadyRated
		}

		res := tx.Model(&models.Order{}).Where("id = ? AND rating IS NULL", order.ID).Update("rating", rating)
		if res.Error != nil {
			return utils.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.ErrAlreadyRated
		}

		var cafe models.Cafe
		if err := tx.Select("id", "rating", "rating_count").First(&cafe, "id = ?", order.CafeID).Error; err != nil {
			return storeError(err, "cafe")
		}
		newAvg = rollingAverage(cafe.Rating, cafe.RatingCount, rating)
		if err := tx.Model(&models.Cafe{}).Where("id = ?", cafe.ID).Updates(map[string]interface{}{
			"rating":       newAvg,
			"rating_count": cafe.RatingCount + 1,
		}).Error; err != nil {
			return utils.Internal(fmt.Errorf("failed to update cafe rating: %w", err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"order_id": orderID, "rating": rating}).Info("Order rated")
	return newAvg, nil
}

// AddItemRating -> rating satu baris order + update rata-rata menu item
func (s *RatingService) AddItemRating(ctx context.Context, lineID string, rating int) (float64, error) {
	if !validRating(rating) {
		return 0, utils.ErrInvalidRating
	}

	var newAvg float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := completedLine(tx, lineID)
		if err != nil {
			return err
		}
		if line.Rating != nil {
			return utils.ErrAlreadyRated
		}

		res := tx.Model(&models.OrderItem{}).Where("id = ? AND rating IS NULL", line.ID).Update("rating", rating)
		if res.Error != nil {
			return utils.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.ErrAlreadyRated
		}

		var item models.Item
		if err := tx.Select("id", "rating", "rating_count").First(&item, "id = ?", line.ItemID).Error; err != nil {
			return storeError(err, "item")
		}
		newAvg = rollingAverage(item.Rating, item.RatingCount, rating)
		if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"rating":       newAvg,
			"rating_count": item.RatingCount + 1,
		}).Error; err != nil {
			return utils.Internal(fmt.Errorf("failed to update item rating: %w", err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newAvg, nil
}

// completedLine -> baris order yang order-nya sudah COMPLETED
func completedLine(tx *gorm.DB, lineID string) (*models.OrderItem, error) {
	var line models.OrderItem
	if err := tx.Preload("Order").First(&line, "id = ?", lineID).Error; err != nil {
		return nil, storeError(err, "order item")
	}
	if line.Order == nil || line.Order.Status != models.StatusCompleted {
		return nil, utils.ErrNotCompleted
	}
	return &line, nil
}

// AddOrderReview -> teks review ditimpa
func (s *RatingService) AddOrderReview(ctx context.Context, orderID, review string) (string, error) {
	db := s.db.WithContext(ctx)
	var order models.Order
	if err := db.Select("id", "status").First(&order, "id = ?", orderID).Error; err != nil {
		return "", storeError(err, "order")
	}
	if order.Status != models.StatusCompleted {
		return "", utils.ErrNotCompleted
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("review", review).Error; err != nil {
		return "", utils.Internal(err)
	}
	return review, nil
}

func (s *RatingService) AddItemReview(ctx context.Context, lineID, review string) (string, error) {
	db := s.db.WithContext(ctx)
	line, err := completedLine(db, lineID)
	if err != nil {
		return "", err
	}
	if err := db.Model(&models.OrderItem{}).Where("id = ?", line.ID).Update("review", review).Error; err != nil {
		return "", utils.Internal(err)
	}
	return review, nil
}

// OrderForReview -> daftar menu untuk halaman review, hanya order yang belum diberi rating
func (s *RatingService) OrderForReview(ctx context.Context, orderID string) (*ReviewSheet, error) {
	var order models.Order
	err := withLines(s.db.WithContext(ctx)).
		Where("rating IS NULL").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, storeError(err, "order")
	}
	if len(order.OrderItems) == 0 {
		return nil, utils.NotFound("order")
	}

	sheet := &ReviewSheet{Order: order.ID, ItemsToReview: make([]ReviewLine, 0, len(order.OrderItems))}
	for _, line := range order.OrderItems {
		rl := ReviewLine{ID: line.ID, Rating: line.Rating}
		if line.Item != nil {
			rl.Name = line.Item.Name
			rl.Image = line.Item.Image
		}
		sheet.ItemsToReview = append(sheet.ItemsToReview, rl)
	}
	return sheet, nil
}
