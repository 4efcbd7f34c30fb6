package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
)

func TestDashboardAnalytics(t *testing.T) {
	env := newTestEnv(t)
	cafe := seedCafe(t, env.db, true)
	seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)
	rec := seedItem(t, env.db, cafe.ID, "Cold Coffee", 180, true)
	require.NoError(t, env.db.Model(rec).Update("recommended", true).Error)

	out, err := NewAnalyticsService(env.db).Dashboard(context.Background(), cafe.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.TotalItems)
	assert.EqualValues(t, 1, out.RecommendedItems)

	_, err = NewAnalyticsService(env.db).Dashboard(context.Background(), "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestSalesAnalytics(t *testing.T) {
	env := newTestEnv(t)
	cafe := seedCafe(t, env.db, true)
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	asha := models.Customer{Name: "Asha", Phone: "9000000001"}
	ravi := models.Customer{Name: "Ravi", Phone: "9000000002"}
	require.NoError(t, env.db.Create(&asha).Error)
	require.NoError(t, env.db.Create(&ravi).Error)

	withCustomer := func(o *models.Order, c *models.Customer) {
		require.NoError(t, env.db.Model(o).Update("customer_id", c.ID).Error)
	}

	o1 := insertOrder(t, env, cafe.ID, 1, models.StatusCompleted, base)
	o2 := insertOrder(t, env, cafe.ID, 2, models.StatusCompleted, base.Add(time.Hour))
	o3 := insertOrder(t, env, cafe.ID, 3, models.StatusServed, base.Add(2*time.Hour))
	insertOrder(t, env, cafe.ID, 4, models.StatusOrdered, base.Add(3*time.Hour))
	insertOrder(t, env, cafe.ID, 5, models.StatusInitialised, base.Add(3*time.Hour))
	insertOrder(t, env, cafe.ID, 6, models.StatusCompleted, base.Add(72*time.Hour))
	withCustomer(o1, &asha)
	withCustomer(o2, &asha)
	withCustomer(o3, &ravi)

	out, err := NewAnalyticsService(env.db).Sales(context.Background(), cafe.ID, base.Add(-time.Hour), base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 4, out.TotalOrders)
	assert.True(t, decimal.NewFromInt(400).Equal(out.TotalSales), "sales %s", out.TotalSales)
	assert.Equal(t, 2, out.TotalUniqueCustomers)
	assert.Equal(t, 2, out.TotalCustomers.NewCustomers)
	assert.Equal(t, 1, out.TotalCustomers.RepeatCustomers)
	assert.Equal(t, 3, out.TotalCustomers.TotalCustomers)
	assert.Equal(t, 2, out.CustomerFrequency[asha.ID])
	assert.Equal(t, 1, out.CustomerFrequency[ravi.ID])

	_, err = NewAnalyticsService(env.db).Sales(context.Background(), cafe.ID, base, base)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
