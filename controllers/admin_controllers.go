package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetProfile -> admin dari JWT beserta cafe-nya
func (ac *AdminController) GetProfile(c *gin.Context) {
	var admin models.Admin
	if err := ac.DB.First(&admin, "id = ?", c.GetString(middlewares.KeyAdminID)).Error; err != nil {
		utils.RespondAppError(c, utils.NotFound("admin"))
		return
	}

	var cafe *models.Cafe
	if admin.CafeID != nil {
		var found models.Cafe
		if err := ac.DB.First(&found, "id = ?", *admin.CafeID).Error; err == nil {
			cafe = &found
		}
	}

	utils.RespondJSON(c, http.StatusOK, "User Found", gin.H{
		"user": admin,
		"cafe": cafe,
	})
}

func (ac *AdminController) UpdateName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=3,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := ac.DB.Model(&models.Admin{}).Where("id = ?", c.GetString(middlewares.KeyAdminID)).Update("name", req.Name).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Name Updated", req.Name)
}

// ResetPassword -> password lama wajib benar
func (ac *AdminController) ResetPassword(c *gin.Context) {
	var req struct {
		Password    string `json:"password" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	var admin models.Admin
	if err := ac.DB.First(&admin, "id = ?", c.GetString(middlewares.KeyAdminID)).Error; err != nil {
		utils.RespondAppError(c, utils.NotFound("admin"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		utils.RespondAppError(c, utils.Validation("password", "Password Mismatched"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	if err := ac.DB.Model(&admin).Update("password", string(hashed)).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Password Updated", nil)
}
