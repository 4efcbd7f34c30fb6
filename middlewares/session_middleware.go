package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// Session -> token meja dari header atau cookie "token", isi order_id dan cafe_id
func Session(tokens *utils.Tokens, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			unauthorized(c, utils.ErrUnauthorized.Message)
			return
		}

		claims, err := tokens.ParseSessionToken(tokenString)
		if err != nil {
			unauthorized(c, "Session Expired")
			return
		}

		var order models.Order
		if err := db.WithContext(c.Request.Context()).Select("id", "cafe_id").First(&order, "id = ?", claims.Order).Error; err != nil {
			unauthorized(c, "No Order found")
			return
		}

		c.Set(KeyOrderID, order.ID)
		c.Set(KeyCafeID, order.CafeID)
		c.Next()
	}
}
