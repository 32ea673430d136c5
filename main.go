// File: hirelink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirelink/config"
	"hirelink/cron"
	"hirelink/database"
	bookingRepoPkg "hirelink/database/repository/booking"
	providerRepoPkg "hirelink/database/repository/provider"
	reviewRepoPkg "hirelink/database/repository/review"
	serviceRepoPkg "hirelink/database/repository/service"
	"hirelink/handlers"
	"hirelink/middleware"
	"hirelink/routes"
	"hirelink/services/booking"
	"hirelink/services/notification"
	"hirelink/services/offering"
	"hirelink/services/provider"
	"hirelink/services/review"
	"hirelink/services/search"
	"hirelink/services/stats"
	"hirelink/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	svcRepo := serviceRepoPkg.NewMongoServiceRepo()
	revRepo := reviewRepoPkg.NewMongoReviewRepo()

	// Event queue for booking notifications.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	notificationService, err := notification.NewQueueNotificationService(asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// services.
	recalculator := &stats.DefaultRecalculator{
		ProviderRepo: provRepo,
		BookingRepo:  bookRepo,
		ReviewRepo:   revRepo,
	}

	searchService := &search.DefaultSearchService{
		ProviderRepo: provRepo,
		ServiceRepo:  svcRepo,
		CacheClient:  utils.GetCacheClient(),
		CacheTTL:     time.Duration(config.AppConfig.SearchCacheTTLSeconds) * time.Second,
		MaxResults:   config.AppConfig.SearchMaxResults,
	}

	providerService := &provider.DefaultProviderService{
		ProviderRepo: provRepo,
		ServiceRepo:  svcRepo,
	}

	offeringService := &offering.DefaultOfferingService{
		ServiceRepo:  svcRepo,
		ProviderRepo: provRepo,
	}

	bookingService := &booking.DefaultBookingService{
		BookingRepo:      bookRepo,
		ProviderRepo:     provRepo,
		ServiceRepo:      svcRepo,
		Recalculator:     recalculator,
		Notifier:         notificationService,
		DefaultMaxActive: config.AppConfig.DefaultMaxActiveBookings,
	}

	reviewService := &review.DefaultReviewService{
		ReviewRepo:   revRepo,
		BookingRepo:  bookRepo,
		Recalculator: recalculator,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Search:   handlers.NewSearchHandler(searchService),
		Provider: handlers.NewProviderHandler(providerService),
		Offering: handlers.NewOfferingHandler(offeringService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Review:   handlers.NewReviewHandler(reviewService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the notification worker.
	cron.InitNotificationWorker()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
