package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/models"
)

func placeBody(lines ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"items": lines, "orderType": "DINEIN"}
}

func line(id string, qty int) map[string]interface{} {
	return map[string]interface{}{"id": id, "quantity": qty}
}

func TestSessionPlaceOrderAndStatus(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)
	bun := h.item(t, cafe.ID, "Bun Maska", 50)

	token, orderID := h.session(t, cafe.ID, 5)

	w, env := h.do(t, http.MethodGet, "/api/user/cafe/items", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var menu map[string][]models.Item
	decodeData(t, env, &menu)
	assert.Len(t, menu["All"], 2)

	w, env = h.do(t, http.MethodPost, "/api/user/order/place", placeBody(line(chai.ID, 2), line(bun.ID, 1)), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var placed models.Order
	decodeData(t, env, &placed)
	assert.Equal(t, orderID, placed.ID)
	assert.True(t, decimal.NewFromInt(250).Equal(placed.Amount))
	assert.Equal(t, models.StatusOrdered, placed.Status)
	require.Len(t, placed.OrderItems, 2)

	w, env = h.do(t, http.MethodGet, "/api/user/order/status", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var status models.OrderStatus
	decodeData(t, env, &status)
	assert.Equal(t, models.StatusOrdered, status)

	w, env = h.do(t, http.MethodPost, "/api/user/order/place", placeBody(line(chai.ID, 1)), token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "state_conflict", env.Kind)

	w, _ = h.do(t, http.MethodGet, "/api/user/order/fetch", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlaceOrderRejections(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)
	_, other := h.adminWithCafe(t, true)
	foreign := h.item(t, other.ID, "Filter Coffee", 90)
	token, orderID := h.session(t, cafe.ID, 2)

	w, _ := h.do(t, http.MethodPost, "/api/user/order/place", placeBody(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := h.do(t, http.MethodPost, "/api/user/order/place", placeBody(), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No Items", env.Message)

	w, env = h.do(t, http.MethodPost, "/api/user/order/place", placeBody(line(foreign.ID, 1)), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", env.Kind)

	w, _ = h.do(t, http.MethodPost, "/api/user/order/place", placeBody(line("missing", 1)), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.Order
	require.NoError(t, h.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, models.StatusInitialised, stored.Status)
	assert.True(t, stored.Amount.IsZero())
}

func TestCafeClosedGate(t *testing.T) {
	h := newHarness(t)
	adminToken, cafe := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)
	token, _ := h.session(t, cafe.ID, 1)

	w, _ := h.do(t, http.MethodPatch, "/api/cafe/shutter", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := h.do(t, http.MethodPost, "/api/user/order/place", placeBody(line(chai.ID, 1)), token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cafe is closed", env.Message)

	w, _ = h.do(t, http.MethodGet, "/api/user/cafe/items", nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// detail cafe tetap bisa dibaca
	w, _ = h.do(t, http.MethodGet, "/api/user/cafe", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(t, http.MethodPost, "/api/user/createSession/"+cafe.ID+"?table=3", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateSessionBadTable(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)

	w, _ := h.do(t, http.MethodPost, "/api/user/createSession/"+cafe.ID+"?table=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodPost, "/api/user/createSession/missing?table=1", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionRejectsGet(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)

	// GET tidak boleh membuat order INITIALISED
	req := httptest.NewRequest(http.MethodGet, "/api/user/createSession/"+cafe.ID+"?table=4", nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, h.db.Model(&models.Order{}).Where("cafe_id = ?", cafe.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, orderID := h.session(t, cafe.ID, 4)
	assert.NotEmpty(t, orderID)
}

func TestRepeatOrderChainEndpoint(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)
	chai := h.item(t, cafe.ID, "Masala Chai", 100)

	first, firstID := h.session(t, cafe.ID, 4)
	body := placeBody(line(chai.ID, 1))
	body["lastOrderId"] = "undefined"
	w, _ := h.do(t, http.MethodPost, "/api/user/order/place", body, first)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := h.do(t, http.MethodGet, "/api/user/order/fetchAll/"+firstID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var chain []models.Order
	decodeData(t, env, &chain)
	assert.Len(t, chain, 1)

	second, secondID := h.session(t, cafe.ID, 4)
	body = placeBody(line(chai.ID, 2))
	body["lastOrderId"] = firstID
	w, _ = h.do(t, http.MethodPost, "/api/user/order/place", body, second)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = h.do(t, http.MethodGet, "/api/user/order/fetchAll/"+secondID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &chain)
	require.Len(t, chain, 2)
	assert.Equal(t, firstID, chain[0].ID)
	assert.Equal(t, secondID, chain[1].ID)
}

func TestUserSignupAndSubscribe(t *testing.T) {
	h := newHarness(t)
	_, cafe := h.adminWithCafe(t, true)
	token, orderID := h.session(t, cafe.ID, 6)

	w, _ := h.do(t, http.MethodPost, "/api/user/order/register", map[string]string{"name": "Ravi", "phone": "12"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodPost, "/api/user/order/register", map[string]string{
		"name": "Ravi", "phone": "9123456780", "city": "Pune", "token": "push-token-1",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, h.db.Preload("Customer").First(&order, "id = ?", orderID).Error)
	require.NotNil(t, order.Customer)
	assert.Equal(t, "9123456780", order.Customer.Phone)

	w, _ = h.do(t, http.MethodPost, "/api/user/subscribe", map[string]string{"token": "push-token-1"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var subs int64
	h.db.Model(&models.Subscription{}).Where("token = ?", "push-token-1").Count(&subs)
	assert.Equal(t, int64(2), subs)

	w, _ = h.do(t, http.MethodPost, "/api/user/subscribe", map[string]string{"token": ""}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
