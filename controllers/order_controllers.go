package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
)

// OrderController -> order board admin
type OrderController struct {
	Machine *services.StateMachine
	Store   *services.OrderStore
}

func NewOrderController(machine *services.StateMachine, store *services.OrderStore) *OrderController {
	return &OrderController{Machine: machine, Store: store}
}

// FetchOrders -> tanggal -> status -> order
func (oc *OrderController) FetchOrders(c *gin.Context) {
	board, err := oc.Machine.GroupByStatusAndDate(c.Request.Context(), c.GetString(middlewares.KeyCafeID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders Found!", board)
}

// FetchOrder -> detail 1 order (publik, dipakai juga halaman rating)
func (oc *OrderController) FetchOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Param("order")
	}
	order, err := oc.Store.GetOrder(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order Found!", order)
}

// UpdateStatus -> admin memindahkan status order
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req struct {
		Order  string `json:"order" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	target := models.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	status, err := oc.Machine.Advance(c.Request.Context(), c.GetString(middlewares.KeyCafeID), req.Order, target)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order Status Updated", status)
}

// OrdersByStatus -> order hari ini per meja
func (oc *OrderController) OrdersByStatus(c *gin.Context) {
	status := models.OrderStatus(strings.ToUpper(c.Param("status")))
	buckets, err := oc.Machine.GroupByTable(c.Request.Context(), c.GetString(middlewares.KeyCafeID), status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders Found!", buckets)
}
