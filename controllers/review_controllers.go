package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
)

type ReviewController struct {
	Ratings *services.RatingService
}

func NewReviewController(ratings *services.RatingService) *ReviewController {
	return &ReviewController{Ratings: ratings}
}

type ratingRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

type reviewRequest struct {
	Review string `json:"review" binding:"max=2000"`
}

func (rc *ReviewController) GetOrderForReview(c *gin.Context) {
	sheet, err := rc.Ratings.OrderForReview(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order Fetched", sheet)
}

func (rc *ReviewController) AddOrderRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	avg, err := rc.Ratings.AddOrderRating(c.Request.Context(), c.Param("order"), *req.Rating)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rating Added", avg)
}

func (rc *ReviewController) AddOrderReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	review, err := rc.Ratings.AddOrderReview(c.Request.Context(), c.Param("order"), req.Review)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review Added", review)
}

func (rc *ReviewController) AddItemRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	avg, err := rc.Ratings.AddItemRating(c.Request.Context(), c.Param("item"), *req.Rating)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rating Added", avg)
}

func (rc *ReviewController) AddItemReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	review, err := rc.Ratings.AddItemReview(c.Request.Context(), c.Param("item"), req.Review)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review Added", review)
}
