package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
)

// CafeClosed -> tolak request customer saat shutter cafe tertutup. Dipasang setelah Session.
func CafeClosed(gate *services.CafeGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.EnsureOpen(c.Request.Context(), c.GetString(KeyCafeID)); err != nil {
			utils.RespondAppError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
