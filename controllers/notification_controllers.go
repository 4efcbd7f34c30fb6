package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
)

type NotificationController struct {
	Notify *services.NotificationService
	Loc    *time.Location
}

func NewNotificationController(notify *services.NotificationService, loc *time.Location) *NotificationController {
	return &NotificationController{Notify: notify, Loc: loc}
}

// SendTopicNotification -> kirim alert/promo ke subscriber cafe atau topik tertentu
func (nc *NotificationController) SendTopicNotification(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required,max=100"`
		Body     string `json:"body" binding:"required"`
		Topic    string `json:"topic"`
		Discount string `json:"discount" binding:"max=50"`
		Expiry   string `json:"expiry" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	expiry, err := parseDate("expiry", req.Expiry, nc.Loc)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	alert, err := nc.Notify.SendTopicNotification(c.Request.Context(), c.GetString(middlewares.KeyCafeID), services.AlertInput{
		Title:    req.Title,
		Body:     req.Body,
		Topic:    req.Topic,
		Discount: req.Discount,
		Expiry:   expiry,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Notification created: %v", alert.Title)
	utils.RespondJSON(c, http.StatusOK, "Notification Sent", alert)
}

func (nc *NotificationController) FetchNotifications(c *gin.Context) {
	alerts, err := nc.Notify.FetchNotifications(c.Request.Context(), c.GetString(middlewares.KeyCafeID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications Found", alerts)
}

// GetCafeFromAlert -> publik, dibuka dari link notifikasi
func (nc *NotificationController) GetCafeFromAlert(c *gin.Context) {
	cafe, alerts, err := nc.Notify.CafeFromAlert(c.Request.Context(), c.Param("cafe"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cafe Found", gin.H{
		"cafeDetails": cafe,
		"alerts":      alerts,
	})
}
