package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/utils"
)

// WebSocketAuth -> browser tidak bisa mengirim header saat upgrade, token admin lewat ?token=
func WebSocketAuth(tokens *utils.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := tokens.ParseAdminToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set(KeyAdminID, claims.Admin)
		c.Next()
	}
}
