package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/cafe-ordering/config"
	"github.com/yeremiapane/cafe-ordering/kds"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/router"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLoggerWithLevel(cfg.LogLevel)

	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	policy, err := services.PolicyFor(cfg.Order.TransitionPolicy)
	if err != nil {
		utils.ErrorLogger.Fatal(err)
	}

	tokens := utils.NewTokens(cfg.Auth.SecurityKey, cfg.Auth.SessionTTL, cfg.Auth.AdminTTL)
	hub := kds.NewHub(kds.RetryPolicy{Delay: cfg.Hub.RetryDelay, MaxAttempts: cfg.Hub.RetryMaxAttempts})

	var dispatcher services.Dispatcher = services.LogDispatcher{}
	if cfg.Notify.AMQPURL != "" {
		rabbit, err := services.NewRabbitDispatcher(cfg.Notify.AMQPURL, cfg.Notify.Exchange)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		dispatcher = rabbit
	} else {
		utils.InfoLogger.Println("AMQP_URL not set, push notifications are only logged")
	}

	notify := services.NewNotificationService(db, dispatcher)
	store := services.NewOrderStore(db)
	gate := services.NewCafeGate(db)

	r := router.SetupRouter(router.Deps{
		DB:         db,
		Tokens:     tokens,
		Hub:        hub,
		Store:      store,
		Machine:    services.NewStateMachine(db, policy, cfg.Order.Location, notify),
		Sessions:   services.NewSessionService(db, store, gate, tokens, hub, notify),
		Gate:       gate,
		Ratings:    services.NewRatingService(db),
		Notify:     notify,
		Analytics:  services.NewAnalyticsService(db),
		Location:   cfg.Order.Location,
		CORSOrigin: cfg.Server.CORSOrigin,
		RateLimit:  cfg.Server.RateLimit,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.InfoLogger.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		hub.Shutdown()
		err := srv.Shutdown(shutdownCtx)
		if cerr := dispatcher.Close(); cerr != nil {
			utils.ErrorLogger.Printf("Error closing dispatcher: %v", cerr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
	utils.InfoLogger.Println("Server stopped")
}
