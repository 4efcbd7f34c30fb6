package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

type DashboardAnalytics struct {
	TotalItems       int64 `json:"totalItems"`
	RecommendedItems int64 `json:"recommendedItems"`
}

type CustomerTotals struct {
	NewCustomers    int `json:"newCustomers"`
	RepeatCustomers int `json:"repeatCustomers"`
	TotalCustomers  int `json:"totalCustomers"`
}

// SalesAnalytics -> ringkasan penjualan dalam rentang [start, end)
type SalesAnalytics struct {
	TotalSales           decimal.Decimal `json:"totalSales"`
	TotalOrders          int             `json:"totalOrders"`
	TotalUniqueCustomers int             `json:"totalUniqueCustomers"`
	TotalCustomers       CustomerTotals  `json:"totalCustomers"`
	CustomerFrequency    map[string]int  `json:"customerFrequency"`
}

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

func (a *AnalyticsService) ensureCafe(db *gorm.DB, cafeID string) error {
	var cafe models.Cafe
	if err := db.Select("id").First(&cafe, "id = ?", cafeID).Error; err != nil {
		return storeError(err, "cafe")
	}
	return nil
}

func (a *AnalyticsService) Dashboard(ctx context.Context, cafeID string) (*DashboardAnalytics, error) {
	db := a.db.WithContext(ctx)
	if err := a.ensureCafe(db, cafeID); err != nil {
		return nil, err
	}

	var out DashboardAnalytics
	if err := db.Model(&models.Item{}).Where("cafe_id = ?", cafeID).Count(&out.TotalItems).Error; err != nil {
		return nil, utils.Internal(err)
	}
	if err := db.Model(&models.Item{}).Where("cafe_id = ? AND recommended = ?", cafeID, true).Count(&out.RecommendedItems).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return &out, nil
}

// Sales -> order INITIALISED (belum ditempatkan) tidak dihitung
func (a *AnalyticsService) Sales(ctx context.Context, cafeID string, start, end time.Time) (*SalesAnalytics, error) {
	if start.IsZero() || end.IsZero() {
		return nil, utils.Validation("startDate", "Start date and end date are required")
	}
	if !end.After(start) {
		return nil, utils.Validation("endDate", "End date must be after start date")
	}

	db := a.db.WithContext(ctx)
	if err := a.ensureCafe(db, cafeID); err != nil {
		return nil, err
	}

	var orders []models.Order
	err := db.Select("id", "amount", "customer_id", "created_at").
		Where("cafe_id = ? AND status <> ? AND created_at >= ? AND created_at < ?",
			cafeID, models.StatusInitialised, start.UTC(), end.UTC()).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, utils.Internal(err)
	}

	out := &SalesAnalytics{TotalSales: decimal.Zero, CustomerFrequency: map[string]int{}}
	for _, o := range orders {
		out.TotalSales = out.TotalSales.Add(o.Amount)
		out.TotalOrders++
		if o.CustomerID == nil {
			continue
		}
		id := *o.CustomerID
		if _, seen := out.CustomerFrequency[id]; !seen {
			out.TotalUniqueCustomers++
			out.TotalCustomers.NewCustomers++
		} else {
			out.TotalCustomers.RepeatCustomers++
		}
		out.CustomerFrequency[id]++
	}
	out.TotalCustomers.TotalCustomers = out.TotalCustomers.NewCustomers + out.TotalCustomers.RepeatCustomers
	return out, nil
}
