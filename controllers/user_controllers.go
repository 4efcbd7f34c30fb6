package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = errors.New("invalid credentials")

type UserController struct {
	DB     *gorm.DB
	Tokens *utils.Tokens
}

func NewUserController(db *gorm.DB, tokens *utils.Tokens) *UserController {
	return &UserController{DB: db, Tokens: tokens}
}

// Register admin baru
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required,min=3,max=100"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"omitempty,min=10,max=15"`
		Password string `json:"password" binding:"required,min=8,max=100"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing int64
	if err := uc.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	if existing > 0 {
		utils.RespondAppError(c, utils.Validation("email", "User Already Exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	admin := models.Admin{
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Password: string(hashed),
	}
	if err := uc.DB.Create(&admin).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	utils.InfoLogger.Printf("New admin registered: %s", admin.Email)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": admin.ID,
	})
}

// Login admin -> return JWT, juga diset sebagai cookie
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	var admin models.Admin
	if err := uc.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := uc.Tokens.GenerateAdminToken(admin.ID)
	if err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	utils.InfoLogger.Printf("Login successful for admin: %s", admin.Email)

	c.SetCookie("token", token, 0, "/", "", false, true)
	cafeID := ""
	if admin.CafeID != nil {
		cafeID = *admin.CafeID
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"cafe":  cafeID,
	})
}

// Logout -> token masuk blacklist
func (uc *UserController) Logout(c *gin.Context) {
	uc.Tokens.RevokeAdminToken(c.GetString(middlewares.KeyToken))
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
