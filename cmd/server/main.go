package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingapp "github.com/depot/backend/internal/application/booking"
	catalogapp "github.com/depot/backend/internal/application/catalog"
	inventoryapp "github.com/depot/backend/internal/application/inventory"
	partnerapp "github.com/depot/backend/internal/application/partner"
	pricingapp "github.com/depot/backend/internal/application/pricing"
	"github.com/depot/backend/internal/infrastructure/config"
	"github.com/depot/backend/internal/infrastructure/logger"
	"github.com/depot/backend/internal/infrastructure/persistence"
	"github.com/depot/backend/internal/interfaces/http/handler"
	"github.com/depot/backend/internal/interfaces/http/middleware"
	"github.com/depot/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting depot backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	buyerRepo := persistence.NewGormBuyerRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	priceRepo := persistence.NewGormPriceQuoteRepository(db.DB)
	bookingTxScope := persistence.NewGormBookingTransactionScope(db.DB)

	// Application services
	itemService := catalogapp.NewItemService(itemRepo)
	warehouseService := inventoryapp.NewWarehouseService(warehouseRepo, itemRepo)
	partnerService := partnerapp.NewPartnerService(buyerRepo, orgRepo)
	bookingService := bookingapp.NewBookingService(bookingTxScope, bookingRepo, warehouseRepo, itemRepo, buyerRepo, orgRepo)
	priceService := pricingapp.NewPriceService(priceRepo, warehouseRepo, itemRepo)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(
		middleware.RequestID(),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	engine.GET("/health", healthHandler(db))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewWarehouseHandler(warehouseService)).
		Register(handler.NewPartnerHandler(partnerService)).
		Register(handler.NewBookingHandler(bookingService)).
		Register(handler.NewPriceHandler(priceService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
