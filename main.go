// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	recordsRepo "medibook/database/repository/records"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/calendar"
	"medibook/services/mailer"
	"medibook/services/payment"
	"medibook/utils"

	ai "medibook/services/intelligence"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	ctx := context.Background()

	loc, err := time.LoadLocation(config.AppConfig.BusinessTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid business timezone %q: %v", config.AppConfig.BusinessTimezone, err)
	}
	hours := models.BusinessHours{
		StartHour: config.AppConfig.BusinessStartHour,
		EndHour:   config.AppConfig.BusinessEndHour,
		Location:  loc,
	}

	// Collaborators.
	calendarService, err := calendar.NewGoogleCalendarService(ctx,
		config.AppConfig.GoogleCredentials, config.AppConfig.CalendarID, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}
	mailService, err := mailer.NewGmailService(ctx, config.AppConfig.GoogleCredentials, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize mail service: %v", err)
	}
	stripe.Key = config.AppConfig.StripeKey
	paymentService := payment.NewStripeCheckoutService(logger)

	// Without an API key the classifier runs on its keyword rules alone.
	classifier := ai.NewDefaultClassifier(nil, logger)
	if config.AppConfig.GeminiAPIKey != "" {
		classifier = ai.NewDefaultClassifier(ai.NewGeminiClient(config.AppConfig.GeminiAPIKey), logger)
	}

	// Repositories.
	recRepo := recordsRepo.NewMongoRecordRepo()

	// Core services.
	availabilityService := &booking.AvailabilityService{
		Calendar: calendarService,
		Hours:    hours,
		Logger:   logger,
	}
	confirmer := &booking.AppointmentConfirmer{
		Calendar: calendarService,
		Mailer:   mailService,
		Records:  recRepo,
		Hours:    hours,
		Logger:   logger,
	}
	slotDuration := time.Duration(config.AppConfig.SlotDurationMinutes) * time.Minute
	bookingService := &booking.DefaultBookingSessionService{
		Availability: availabilityService,
		Payments:     paymentService,
		Confirmer:    confirmer,
		WindowDays:   config.AppConfig.BookingWindowDays,
		SlotDuration: slotDuration,
		Logger:       logger,
	}

	// Mailbox poller.
	cron.InitMailboxWorker(&cron.MailboxProcessor{
		Mailer:        mailService,
		Classifier:    classifier,
		BookingAppURL: config.AppConfig.BookingAppURL,
		Logger:        logger,
	})

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	bookingHandler := handlers.NewBookingHandler(
		bookingService, availabilityService,
		config.AppConfig.BookingWindowDays, slotDuration, logger)
	adminHandler := handlers.NewAdminHandler(recRepo)

	routes.RegisterRoutes(router, bookingHandler, adminHandler)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
