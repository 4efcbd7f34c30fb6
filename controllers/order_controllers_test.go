package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/services"
)

// placeOrder -> sesi + order ORDERED, return order id
func (h *harness) placeOrder(t *testing.T, cafeID string, table int, itemID string, qty int) string {
	t.Helper()
	token, orderID := h.session(t, cafeID, table)
	w, _ := h.do(t, http.MethodPost, "/api/user/order/place", placeBody(line(itemID, qty)), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return orderID
}

func TestUpdateStatusOnBoard(t *testing.T) {
	h := newHarness(t)
	token, cafe := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)
	orderID := h.placeOrder(t, cafe.ID, 5, chai.ID, 2)

	w, env := h.do(t, http.MethodPost, "/api/cafe/order/status", map[string]string{"order": orderID, "status": "preparing"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var status models.OrderStatus
	decodeData(t, env, &status)
	assert.Equal(t, models.StatusPreparing, status)

	w, env = h.do(t, http.MethodPost, "/api/cafe/order/status", map[string]string{"order": orderID, "status": "ORDERED"}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Invalid Status", env.Message)

	var stored models.Order
	require.NoError(t, h.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, models.StatusPreparing, stored.Status)

	w, _ = h.do(t, http.MethodPost, "/api/cafe/order/status", map[string]string{"order": orderID}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusOtherCafe(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)
	otherToken, _ := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)
	orderID := h.placeOrder(t, cafe.ID, 1, chai.ID, 1)

	w, _ := h.do(t, http.MethodPost, "/api/cafe/order/status", map[string]string{"order": orderID, "status": "PREPARING"}, otherToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Order
	require.NoError(t, h.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, models.StatusOrdered, stored.Status)
}

func TestBoardViews(t *testing.T) {
	h := newHarness(t)
	token, cafe := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)
	first := h.placeOrder(t, cafe.ID, 7, chai.ID, 1)
	second := h.placeOrder(t, cafe.ID, 3, chai.ID, 2)
	// sesi tanpa order tidak tampil di board
	h.session(t, cafe.ID, 9)

	w, env := h.do(t, http.MethodGet, "/api/cafe/orders", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var board []services.BoardDay
	decodeData(t, env, &board)
	require.Len(t, board, 1)
	assert.NotEmpty(t, board[0].Date)
	assert.Len(t, board[0].Statuses[models.StatusOrdered], 2)
	assert.NotContains(t, board[0].Statuses, models.StatusInitialised)

	w, env = h.do(t, http.MethodGet, "/api/cafe/orders/status/ordered", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var buckets []services.TableBucket
	decodeData(t, env, &buckets)
	require.Len(t, buckets, 2)
	assert.Equal(t, 3, buckets[0].TableNumber)
	assert.Equal(t, second, buckets[0].Orders[0].ID)
	assert.Equal(t, 7, buckets[1].TableNumber)
	assert.Equal(t, first, buckets[1].Orders[0].ID)

	// detail order publik
	w, env = h.do(t, http.MethodGet, "/api/cafe/order/"+first, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	decodeData(t, env, &order)
	assert.Equal(t, 7, order.TableNumber)

	w, _ = h.do(t, http.MethodGet, "/api/cafe/order/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
