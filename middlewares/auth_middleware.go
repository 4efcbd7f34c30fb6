package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// Key context yang diisi middleware
const (
	KeyAdminID = "admin_id"
	KeyCafeID  = "cafe_id"
	KeyOrderID = "order_id"
	KeyToken   = "token"
)

// bearerToken -> x-auth-token lebih dulu, lalu Authorization (dengan atau tanpa "Bearer ")
func bearerToken(c *gin.Context) string {
	if token := c.GetHeader("x-auth-token"); token != "" {
		return token
	}
	return strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.JSONResponse{
		Status:  false,
		Message: message,
		Kind:    utils.KindValidation,
	})
}

// AdminAuth -> token dashboard, isi admin_id dan cafe_id (kosong jika admin belum punya cafe)
func AdminAuth(tokens *utils.Tokens, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			unauthorized(c, utils.ErrUnauthorized.Message)
			return
		}

		claims, err := tokens.ParseAdminToken(tokenString)
		if err != nil {
			unauthorized(c, "Token is not Valid")
			return
		}

		var admin models.Admin
		if err := db.WithContext(c.Request.Context()).Select("id", "cafe_id").First(&admin, "id = ?", claims.Admin).Error; err != nil {
			unauthorized(c, "No user found")
			return
		}

		c.Set(KeyAdminID, admin.ID)
		c.Set(KeyToken, tokenString)
		if admin.CafeID != nil {
			c.Set(KeyCafeID, *admin.CafeID)
		}
		c.Next()
	}
}

// RequireCafe -> endpoint cafe hanya untuk admin yang sudah mendaftarkan cafe
func RequireCafe() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyCafeID) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, utils.JSONResponse{
				Status:  false,
				Message: "No Cafe",
				Kind:    utils.KindValidation,
			})
			return
		}
		c.Next()
	}
}
