package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
)

// CustomerController -> endpoint customer di meja (sesi QR)
type CustomerController struct {
	Sessions *services.SessionService
	Notify   *services.NotificationService
	Tokens   *utils.Tokens
}

func NewCustomerController(sessions *services.SessionService, notify *services.NotificationService, tokens *utils.Tokens) *CustomerController {
	return &CustomerController{Sessions: sessions, Notify: notify, Tokens: tokens}
}

// CreateSession -> POST /createSession/:cafe?table=N
func (cc *CustomerController) CreateSession(c *gin.Context) {
	table, err := strconv.Atoi(c.Query("table"))
	if err != nil {
		utils.RespondAppError(c, utils.Validation("table", "Invalid Request"))
		return
	}

	token, order, err := cc.Sessions.CreateSession(c.Request.Context(), c.Param("cafe"), table)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.SetCookie("token", token, int(cc.Tokens.SessionTTL().Seconds()), "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Session Created", gin.H{
		"token": token,
		"order": order.ID,
	})
}

func (cc *CustomerController) PlaceOrder(c *gin.Context) {
	var req struct {
		Items       []services.LineInput `json:"items"`
		OrderType   models.OrderType     `json:"orderType"`
		Note        string               `json:"note" binding:"max=1000"`
		LastOrderID string               `json:"lastOrderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	order, err := cc.Sessions.PlaceOrder(c.Request.Context(), c.GetString(middlewares.KeyOrderID), services.PlaceOrderInput{
		Lines:       req.Items,
		OrderType:   req.OrderType,
		Note:        req.Note,
		LastOrderID: req.LastOrderID,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order Placed", order)
}

func (cc *CustomerController) FetchOrder(c *gin.Context) {
	order, err := cc.Sessions.FetchOrder(c.Request.Context(), c.GetString(middlewares.KeyOrderID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order Fetched", order)
}

// FetchAllOrders -> semua order dalam repeat chain
func (cc *CustomerController) FetchAllOrders(c *gin.Context) {
	orders, err := cc.Sessions.FetchChain(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders Fetched", orders)
}

func (cc *CustomerController) OrderStatus(c *gin.Context) {
	status, err := cc.Sessions.OrderStatus(c.Request.Context(), c.GetString(middlewares.KeyOrderID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order Status fetched", status)
}

func (cc *CustomerController) UserSignup(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"max=100"`
		Phone string `json:"phone" binding:"required,min=10,max=15"`
		City  string `json:"city" binding:"max=100"`
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	_, err := cc.Sessions.UserSignup(c.Request.Context(), c.GetString(middlewares.KeyOrderID), c.GetString(middlewares.KeyCafeID), services.SignupInput{
		Name:  req.Name,
		Phone: req.Phone,
		City:  req.City,
		Token: req.Token,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User Updated", nil)
}

// Subscribe -> token push ikut topik order dan cafe
func (cc *CustomerController) Subscribe(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	err := cc.Notify.Subscribe(c.Request.Context(), req.Token, c.GetString(middlewares.KeyOrderID), c.GetString(middlewares.KeyCafeID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Subscribed", nil)
}
