package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/cafe-ordering/kds"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type KDSController struct {
	Hub *kds.Hub
}

func NewKDSController(hub *kds.Hub) *KDSController {
	return &KDSController{Hub: hub}
}

// AdminSocket -> /ws/admin, display dapur menerima setiap order baru
func (kc *KDSController) AdminSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Error upgrading admin websocket: %v", err)
		return
	}
	utils.InfoLogger.WithField("admin_id", c.GetString(middlewares.KeyAdminID)).Info("Admin display connected")

	kc.Hub.ServeAdmin(ws)
}

// PageSocket -> /ws/page?page=, pesan diteruskan ke koneksi lain di page yang sama
func (kc *KDSController) PageSocket(c *gin.Context) {
	page := c.Query("page")
	if page == "" {
		utils.RespondAppError(c, utils.Validation("page", "page is required"))
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Error upgrading page websocket: %v", err)
		return
	}
	utils.InfoLogger.WithFields(logrus.Fields{"page": page}).Info("Page viewer connected")

	kc.Hub.ServePage(ws, page)
}
