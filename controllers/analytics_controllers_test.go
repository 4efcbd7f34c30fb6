package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/services"
)

func TestAnalyticsEndpoints(t *testing.T) {
	h := newHarness(t)
	token, cafe := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)
	h.item(t, cafe.ID, "Bun Maska", 50)
	h.placeOrder(t, cafe.ID, 1, chai.ID, 2)
	h.placeOrder(t, cafe.ID, 2, chai.ID, 1)
	h.session(t, cafe.ID, 3)

	w, env := h.do(t, http.MethodGet, "/api/cafe/analytics/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var dash services.DashboardAnalytics
	decodeData(t, env, &dash)
	assert.Equal(t, int64(2), dash.TotalItems)

	today := time.Now().UTC()
	body := map[string]string{
		"startDate": today.AddDate(0, 0, -1).Format("2006-01-02"),
		"endDate":   today.AddDate(0, 0, 1).Format("2006-01-02"),
	}
	w, env = h.do(t, http.MethodPost, "/api/cafe/analytics", body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sales services.SalesAnalytics
	decodeData(t, env, &sales)
	assert.Equal(t, 2, sales.TotalOrders)
	assert.True(t, decimal.NewFromInt(300).Equal(sales.TotalSales))

	w, _ = h.do(t, http.MethodPost, "/api/cafe/analytics", map[string]string{"startDate": "yesterday", "endDate": body["endDate"]}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodPost, "/api/cafe/analytics", map[string]string{"startDate": body["endDate"], "endDate": body["startDate"]}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
