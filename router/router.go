package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/controllers"
	"github.com/yeremiapane/cafe-ordering/kds"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

// Deps -> semua dependency yang dirakit di main
type Deps struct {
	DB         *gorm.DB
	Tokens     *utils.Tokens
	Hub        *kds.Hub
	Store      *services.OrderStore
	Machine    *services.StateMachine
	Sessions   *services.SessionService
	Gate       *services.CafeGate
	Ratings    *services.RatingService
	Notify     *services.NotificationService
	Analytics  *services.AnalyticsService
	Location   *time.Location
	CORSOrigin string
	RateLimit  int
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.RateLimit <= 0 {
		d.RateLimit = 50
	}

	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.NewPerSecondRateLimiter(d.RateLimit).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(d.DB, d.Tokens)
	adminCtrl := controllers.NewAdminController(d.DB)
	cafeCtrl := controllers.NewCafeController(d.DB)
	menuCtrl := controllers.NewMenuController(d.DB)
	orderCtrl := controllers.NewOrderController(d.Machine, d.Store)
	customerCtrl := controllers.NewCustomerController(d.Sessions, d.Notify, d.Tokens)
	reviewCtrl := controllers.NewReviewController(d.Ratings)
	notificationCtrl := controllers.NewNotificationController(d.Notify, d.Location)
	analyticsCtrl := controllers.NewAnalyticsController(d.Analytics, d.Location)
	kdsCtrl := controllers.NewKDSController(d.Hub)

	adminAuth := middlewares.AdminAuth(d.Tokens, d.DB)
	session := middlewares.Session(d.Tokens, d.DB)
	cafeOpen := middlewares.CafeClosed(d.Gate)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      AUTH
	// ----------------------------------------------------------------
	auth := api.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter().RateLimit())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	admin := api.Group("/admin")
	admin.Use(adminAuth)
	{
		admin.GET("", adminCtrl.GetProfile)
		admin.PATCH("/updateName", adminCtrl.UpdateName)
		admin.PATCH("/reset/password", adminCtrl.ResetPassword)
		admin.POST("/logout", userCtrl.Logout)
	}

	// ----------------------------------------------------------------
	//                      CAFE (admin)
	// ----------------------------------------------------------------
	api.GET("/cafe/order/:id", orderCtrl.FetchOrder)

	cafe := api.Group("/cafe")
	cafe.Use(adminAuth)
	{
		cafe.GET("", cafeCtrl.GetCafe)
		cafe.POST("/register", cafeCtrl.RegisterCafe)
	}

	owned := cafe.Group("")
	owned.Use(middlewares.RequireCafe())
	{
		owned.PATCH("/shutter", cafeCtrl.ToggleShutter)
		owned.PATCH("/details", cafeCtrl.UpdateDetails)

		owned.POST("/items", menuCtrl.AddItem)
		owned.GET("/items", menuCtrl.ItemsByCategory)
		owned.GET("/item/detail/:id", menuCtrl.FetchItem)
		owned.PATCH("/item/detail/:id", menuCtrl.UpdateItem)
		owned.PATCH("/item/stock/:id", menuCtrl.ToggleInStock)

		owned.GET("/analytics/dashboard", analyticsCtrl.Dashboard)
		owned.POST("/analytics", analyticsCtrl.Sales)

		owned.GET("/orders", orderCtrl.FetchOrders)
		owned.POST("/order/status", orderCtrl.UpdateStatus)
		owned.GET("/orders/status/:status", orderCtrl.OrdersByStatus)

		owned.POST("/notification/push", notificationCtrl.SendTopicNotification)
		owned.GET("/notification/fetch", notificationCtrl.FetchNotifications)
	}

	// ----------------------------------------------------------------
	//                      CUSTOMER (sesi meja)
	// ----------------------------------------------------------------
	user := api.Group("/user")
	user.POST("/createSession/:cafe", customerCtrl.CreateSession)

	// publik, dibuka dari link rating / notifikasi
	user.GET("/order/fetchAll/:orderId", customerCtrl.FetchAllOrders)
	user.GET("/review/fetchOrder/:orderId", reviewCtrl.GetOrderForReview)
	user.GET("/rating/order/:order", orderCtrl.FetchOrder)
	user.POST("/rating/order/:order", reviewCtrl.AddOrderRating)
	user.POST("/review/order/:order", reviewCtrl.AddOrderReview)
	user.POST("/rating/item/:item", reviewCtrl.AddItemRating)
	user.POST("/review/item/:item", reviewCtrl.AddItemReview)
	user.GET("/alert/:cafe", notificationCtrl.GetCafeFromAlert)

	sess := user.Group("")
	sess.Use(session)
	{
		sess.GET("/cafe", cafeCtrl.GetCafe)
		sess.GET("/order/fetch", customerCtrl.FetchOrder)
		sess.POST("/order/register", customerCtrl.UserSignup)
		sess.POST("/subscribe", customerCtrl.Subscribe)
	}

	open := user.Group("")
	open.Use(session, cafeOpen)
	{
		open.GET("/cafe/items", menuCtrl.ItemsByCategory)
		open.POST("/order/place", customerCtrl.PlaceOrder)
		open.GET("/order/status", customerCtrl.OrderStatus)
	}

	// ----------------------------------------------------------------
	//                      WEBSOCKET
	// ----------------------------------------------------------------
	ws := r.Group("/ws")
	ws.GET("/admin", middlewares.WebSocketAuth(d.Tokens), kdsCtrl.AdminSocket)
	ws.GET("/page", kdsCtrl.PageSocket)

	return r
}
