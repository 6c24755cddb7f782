package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carrent/config"
	workercron "carrent/cron"
	"carrent/database"
	carRepo "carrent/database/repository/car"
	contractRepo "carrent/database/repository/contract"
	paymentRepo "carrent/database/repository/payment"
	rentalRepo "carrent/database/repository/rental"
	userRepo "carrent/database/repository/user"
	"carrent/handlers"
	"carrent/middleware"
	"carrent/routes"
	"carrent/services/booking"
	"carrent/services/contractgen"
	"carrent/services/notification"
	"carrent/services/storage"
	"carrent/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// External collaborators.
	var notifier notification.NotificationService = &notification.LogNotificationService{Logger: logger}
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
		notifier = &notification.FCMNotificationService{}
	}

	var docStore storage.StorageService
	docStore, err := storage.NewCloudinaryStorage(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize contract storage: %v", err)
	}

	// Repositories.
	rentals := rentalRepo.NewMySQLRentalRepo(database.DB)
	cars := carRepo.NewMySQLCarRepo(database.DB)
	users := userRepo.NewMySQLUserRepo(database.DB)
	contracts := contractRepo.NewMySQLContractRepo(database.DB)
	payments := paymentRepo.NewMySQLPaymentRepo(database.DB)

	// Services.
	deadlines := booking.Deadlines{
		Signing: config.AppConfig.SigningDeadline(),
		Payment: config.AppConfig.PaymentDeadline(),
	}
	bookingService := &booking.DefaultBookingService{
		Rentals:   rentals,
		Cars:      cars,
		Users:     users,
		Contracts: contracts,
		Renderer:  &contractgen.DefaultRenderer{Storage: docStore},
		Deadlines: deadlines,
		Logger:    logger,
	}
	signingService := &booking.DefaultSigningService{
		Rentals:      rentals,
		Contracts:    contracts,
		Users:        users,
		Notification: notifier,
		FrontendURL:  config.AppConfig.FrontendURL,
		TokenTTL:     config.AppConfig.SigningTokenTTL(),
		Logger:       logger,
	}
	paymentService := &booking.DefaultPaymentService{
		Payments:  payments,
		Rentals:   rentals,
		Lifecycle: bookingService,
		Gateway: &booking.StripeGateway{
			SuccessURL: config.AppConfig.FrontendURL + "/payments/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:  config.AppConfig.FrontendURL + "/payments/cancelled",
		},
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		DedupCache:    utils.GetCacheClient(),
		Logger:        logger,
	}

	// Reconciliation worker.
	autoCancelEvery, err := time.ParseDuration(config.AppConfig.AutoCancelEvery)
	if err != nil {
		logger.Sugar().Fatalf("main: bad AUTO_CANCEL_EVERY: %v", err)
	}
	restoreEvery, err := time.ParseDuration(config.AppConfig.RestoreAvailability)
	if err != nil {
		logger.Sugar().Fatalf("main: bad RESTORE_AVAILABILITY_EVERY: %v", err)
	}
	worker := &workercron.Worker{
		Lifecycle:    bookingService,
		Logger:       logger,
		AutoCancel:   autoCancelEvery,
		RestoreAvail: restoreEvery,
	}
	if err := worker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start reconciliation worker: %v", err)
	}

	// Router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, &routes.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Signing: handlers.NewSigningHandler(signingService, logger),
		Payment: handlers.NewPaymentHandler(paymentService, logger),
		Staff:   handlers.NewStaffHandler(bookingService, contracts, cars, logger),
	})

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

	worker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
