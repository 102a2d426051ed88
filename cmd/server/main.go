package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-ticket-store/config"
	"go-gin-ticket-store/internal/auth"
	"go-gin-ticket-store/internal/cache"
	"go-gin-ticket-store/internal/database"
	"go-gin-ticket-store/internal/handler"
	"go-gin-ticket-store/internal/middleware"
	"go-gin-ticket-store/internal/queue"
	"go-gin-ticket-store/internal/repository"
	"go-gin-ticket-store/internal/service"
	"go-gin-ticket-store/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TicketSalesFlagKey 控制訂單建立端點的開關
const TicketSalesFlagKey = "ENABLE_TICKET_SALES"

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// Repository 層
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	flagRepo := repository.NewFeatureFlagRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	flagCache := cache.NewRedisFeatureFlagCache(rdb, flagRepo, cfg.Flags.TTL)

	analyticsQueue, err := queue.NewRedisStreamAnalyticsQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize analytics queue: %v", err)
	}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Service 層
	userService := service.NewUserService(userRepo, tokenManager)
	eventService := service.NewEventService(eventRepo, ticketRepo)
	ticketService := service.NewTicketService(ticketRepo, eventRepo)
	orderService := service.NewOrderService(pool, orderRepo, ticketRepo, cfg.Order.ExpireAfter, cfg.Order.LockTimeout, cfg.Order.SweepBatch)
	flagService := service.NewFeatureFlagService(flagRepo, flagCache)
	analyticsService := service.NewAnalyticsService(analyticsRepo, analyticsQueue)

	// 背景 worker
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	analyticsWorker := worker.NewAnalyticsWorker(analyticsRepo, analyticsQueue)
	go func() {
		if err := analyticsWorker.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Analytics worker stopped: %v", err)
		}
	}()

	expiryWorker := worker.NewExpiryWorker(orderService, cfg.Order.SweepInterval)
	go func() {
		if err := expiryWorker.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Expiry worker stopped: %v", err)
		}
	}()

	router := gin.Default()
	router.Use(middleware.TrackMetrics())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(tokenManager)
	requireSales := middleware.RequireFeatureFlag(flagService, TicketSalesFlagKey)

	handler.NewUserHandler(userService).RegisterRoutes(router, requireAuth)
	handler.NewEventHandler(eventService).RegisterRoutes(router, requireAuth)
	handler.NewTicketHandler(ticketService).RegisterRoutes(router, requireAuth)
	handler.NewOrderHandler(orderService).RegisterRoutes(router, requireAuth, requireSales)
	handler.NewFeatureFlagHandler(flagService).RegisterRoutes(router, requireAuth)
	handler.NewAnalyticsHandler(analyticsService).RegisterRoutes(router, requireAuth)
	handler.NewFaultHandler(cfg.Fault.Enabled).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
