package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
	Loc       *time.Location
}

func NewAnalyticsController(analytics *services.AnalyticsService, loc *time.Location) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Loc: loc}
}

func (ac *AnalyticsController) Dashboard(c *gin.Context) {
	out, err := ac.Analytics.Dashboard(c.Request.Context(), c.GetString(middlewares.KeyCafeID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Analytics Found!", out)
}

// Sales -> body {startDate, endDate}, endDate eksklusif
func (ac *AnalyticsController) Sales(c *gin.Context) {
	var req struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	start, err := parseDate("startDate", req.StartDate, ac.Loc)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	end, err := parseDate("endDate", req.EndDate, ac.Loc)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	out, err := ac.Analytics.Sales(c.Request.Context(), c.GetString(middlewares.KeyCafeID), start, end)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success", out)
}
