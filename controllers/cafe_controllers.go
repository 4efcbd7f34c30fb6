package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

type CafeController struct {
	DB *gorm.DB
}

func NewCafeController(db *gorm.DB) *CafeController {
	return &CafeController{DB: db}
}

// RegisterCafe -> buat cafe dan ikat ke admin yang login
func (cc *CafeController) RegisterCafe(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required,min=3,max=100"`
		Address    string `json:"address" binding:"required,min=3,max=100"`
		City       string `json:"city" binding:"required,min=3,max=100"`
		State      string `json:"state" binding:"required,min=3,max=100"`
		Pincode    string `json:"pincode" binding:"required,max=10"`
		Phone      string `json:"phone" binding:"required,min=10,max=15"`
		Email      string `json:"email" binding:"omitempty,email"`
		ReviewLink string `json:"reviewLink" binding:"omitempty,max=255"`
		OpenStatus bool   `json:"openStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	if c.GetString(middlewares.KeyCafeID) != "" {
		utils.RespondAppError(c, &utils.AppError{Kind: utils.KindStateConflict, Message: "Cafe already registered"})
		return
	}

	cafe := models.Cafe{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Pincode:    req.Pincode,
		Phone:      req.Phone,
		Email:      req.Email,
		ReviewLink: req.ReviewLink,
		OpenStatus: req.OpenStatus,
	}
	adminID := c.GetString(middlewares.KeyAdminID)
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cafe).Error; err != nil {
			return err
		}
		return tx.Model(&models.Admin{}).Where("id = ?", adminID).Update("cafe_id", cafe.ID).Error
	})
	if err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	utils.InfoLogger.Printf("Cafe %s registered by admin %s", cafe.ID, adminID)
	utils.RespondJSON(c, http.StatusCreated, "Cafe Created!", cafe)
}

// GetCafe -> cafe dari token (admin atau sesi), fallback ?cafe=
func (cc *CafeController) GetCafe(c *gin.Context) {
	cafeID := c.GetString(middlewares.KeyCafeID)
	if cafeID == "" {
		cafeID = c.Query("cafe")
	}
	if cafeID == "" {
		utils.RespondAppError(c, utils.Validation("cafe", "No Cafe"))
		return
	}

	var cafe models.Cafe
	if err := cc.DB.First(&cafe, "id = ?", cafeID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFound("cafe"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cafe Found", cafe)
}

// ToggleShutter -> buka/tutup penerimaan order
func (cc *CafeController) ToggleShutter(c *gin.Context) {
	cafeID := c.GetString(middlewares.KeyCafeID)
	var cafe models.Cafe
	if err := cc.DB.First(&cafe, "id = ?", cafeID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFound("cafe"))
		return
	}

	if err := cc.DB.Model(&cafe).Update("open_status", !cafe.OpenStatus).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	utils.InfoLogger.WithField("cafe_id", cafe.ID).Infof("Shutter changed, open=%v", cafe.OpenStatus)
	utils.RespondJSON(c, http.StatusOK, "Shutter changed", cafe)
}

// UpdateDetails -> nama, telepon, email, link review; field kosong tidak diubah
func (cc *CafeController) UpdateDetails(c *gin.Context) {
	var req struct {
		Name       *string `json:"name" binding:"omitempty,min=3,max=100"`
		Phone      *string `json:"phone" binding:"omitempty,min=10,max=15"`
		Email      *string `json:"email" binding:"omitempty,email"`
		ReviewLink *string `json:"reviewLink" binding:"omitempty,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.ReviewLink != nil {
		updates["review_link"] = *req.ReviewLink
	}
	if len(updates) == 0 {
		utils.RespondAppError(c, utils.Validation("body", "Nothing to update"))
		return
	}

	cafeID := c.GetString(middlewares.KeyCafeID)
	if err := cc.DB.Model(&models.Cafe{}).Where("id = ?", cafeID).Updates(updates).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	var cafe models.Cafe
	if err := cc.DB.First(&cafe, "id = ?", cafeID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFound("cafe"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cafe Updated", cafe)
}
