// File: nutrivida/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrivida/config"
	"nutrivida/cron"
	"nutrivida/database"
	deliveryRepo "nutrivida/database/repository/delivery"
	intakeRepo "nutrivida/database/repository/intake"
	notificationRepo "nutrivida/database/repository/notification"
	patientRepo "nutrivida/database/repository/patient"
	planRepo "nutrivida/database/repository/plan"
	sessionRepo "nutrivida/database/repository/session"
	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/handlers"
	"nutrivida/middleware"
	"nutrivida/routes"
	"nutrivida/services/notification"
	"nutrivida/services/scanner"
	"nutrivida/services/session"
	"nutrivida/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	ledger := trackingRepo.NewMongoTrackingRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	plans := planRepo.NewMongoPlanRepo()
	sessions := sessionRepo.NewMongoSessionRepo()
	deliveries := deliveryRepo.NewMongoDeliveryRepo()
	intakes := intakeRepo.NewMongoIntakeRepo()
	patients := patientRepo.NewMongoPatientRepo()

	// services.
	dispatcher, err := notification.NewDefaultDispatcher(notifRepo, utils.FCMClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize dispatcher: %v", err)
	}

	sessionService := &session.Service{
		Sessions:   sessions,
		Patients:   patients,
		Dispatcher: dispatcher,
		Logger:     logger,
	}

	// scanners.
	scanners := []scanner.Scanner{
		scanner.NewMealDueScanner(plans, patients, intakes, ledger, dispatcher, logger),
		scanner.NewMealMissedScanner(plans, patients, intakes, ledger, dispatcher, logger),
		scanner.NewDailyMenuScanner(plans, patients, ledger, dispatcher, logger),
		scanner.NewSession24hScanner(sessions, patients, ledger, dispatcher, logger),
		scanner.NewSession1hScanner(sessions, patients, ledger, dispatcher, logger),
		scanner.NewVideoCallScanner(sessions, patients, ledger, dispatcher, logger),
		scanner.NewDeliveryScanner(deliveries, patients, ledger, dispatcher, logger),
		scanner.NewInactivePatientScanner(patients, intakes, ledger, dispatcher, logger),
		session.NewAutoCloser(sessions, logger),
	}
	cron.InitScanWorker(scanners)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Notification: handlers.NewNotificationHandler(notifRepo),
		Session:      handlers.NewSessionHandler(sessionService),
		Intake:       handlers.NewIntakeHandler(intakes, patients, dispatcher, logger),
		Scan:         handlers.NewScanHandler(scanners),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetScanQueueClient(), database.MongoClient)

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
