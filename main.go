// File: localserve/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localserve/config"
	"localserve/database"
	bookingRepoPkg "localserve/database/repository/booking"
	branchRepoPkg "localserve/database/repository/branch"
	catalogRepoPkg "localserve/database/repository/catalog"
	providerRepoPkg "localserve/database/repository/provider"
	"localserve/handlers"
	"localserve/middleware"
	"localserve/routes"
	"localserve/services/assignment"
	"localserve/services/booking"
	"localserve/services/geo"
	"localserve/services/notification"
	"localserve/services/payment"
	providerSvc "localserve/services/provider"
	"localserve/utils"

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

	// Repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	branchRepo := branchRepoPkg.NewMongoBranchRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()

	// Distance engine from configured tiers and metro ranges.
	metroRanges, err := geo.ParseMetroRanges(config.AppConfig.MetroPostalRanges)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid METRO_POSTAL_RANGES: %v", err)
	}
	geoEngine := geo.NewEngine(geo.PricingConfig{
		NearTierKm:    config.AppConfig.NearTierKm,
		MidTierKm:     config.AppConfig.MidTierKm,
		FarTierKm:     config.AppConfig.FarTierKm,
		MidTierCharge: config.AppConfig.MidTierCharge,
		FarTierCharge: config.AppConfig.FarTierCharge,
		MetroRanges:   metroRanges,
	})
	geocoder := geo.NewNominatimGeocoder(
		config.AppConfig.GeocoderBaseURL,
		config.AppConfig.GeocoderCountry,
		time.Duration(config.AppConfig.GeocoderTimeoutSec)*time.Second,
		logger,
	)

	// Outbound notification queue and worker.
	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	notifier := notification.NewQueueNotifier(queueOpt, logger)
	notification.StartWorker(queueOpt, config.AppConfig.OpsWebhookURL, logger)

	// Payment gateway and signature verifier.
	gateway := payment.NewRazorpayGateway(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
		logger,
	)
	verifier := payment.NewVerifier(config.AppConfig.RazorpayKeySecret)

	// Services.
	assigner := &assignment.DefaultAssignmentEngine{
		Providers:   providerRepo,
		Bookings:    bookingRepo,
		CacheClient: utils.GetCacheClient(),
		Logger:      logger,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:     bookingRepo,
		Branches:     branchRepo,
		Catalog:      catalogRepo,
		Providers:    providerRepo,
		Geo:          geoEngine,
		Geocoder:     geocoder,
		Gateway:      gateway,
		Verifier:     verifier,
		Assigner:     assigner,
		Notifier:     notifier,
		Numbers:      booking.NewRedisNumberGenerator(utils.GetCacheClient(), "LS"),
		Logger:       logger,
		Currency:     config.AppConfig.PaymentCurrency,
		GatewayKeyID: config.AppConfig.RazorpayKeyID,
	}
	providerService := &providerSvc.DefaultProviderService{
		Providers: providerRepo,
		Bookings:  bookingRepo,
		Notifier:  notifier,
		Logger:    logger,
	}

	// Handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService),
		Admin:    handlers.NewAdminHandler(bookingService),
		Provider: handlers.NewProviderHandler(providerService),
	}
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Sugar().Warnf("main: media uploads disabled: %v", err)
	} else {
		handlerBundle.Media = handlers.NewMediaHandler(cld, bookingRepo)
	}

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
