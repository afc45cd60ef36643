// File: slotwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	assignmentRepo "slotwise/database/repository/assignment"
	reservationRepo "slotwise/database/repository/reservation"
	settingsRepo "slotwise/database/repository/settings"
	"slotwise/handlers"
	"slotwise/routes"
	"slotwise/services/availability"
	"slotwise/services/notification"
	"slotwise/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	utils.StartHealthMonitor(database.MongoClient)

	// Repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	asgRepo := assignmentRepo.NewMongoAssignmentRepo()
	setRepo := settingsRepo.NewMongoSettingsRepo()

	// Services.
	assignmentResolver := &availability.DefaultAssignmentResolver{
		Repo:   asgRepo,
		Logger: logger,
	}
	calendarService := &availability.DefaultCalendarService{
		Settings:     setRepo,
		Reservations: resRepo,
		Assignments:  assignmentResolver,
		Logger:       logger,
	}

	var notifier notification.Notifier = notification.LogNotifier{}
	if config.AppConfig.RedisAddr != "" {
		notifier = notification.NewQueueNotifier()
		cron.InitNotifyWorker(logger)
	}

	feed := availability.NewHTTPBusyFeed(config.AppConfig.BusyFeedBaseURL)
	sessionService := availability.NewDefaultSessionService(
		feed,
		notifier,
		utils.GetSessionCacheClient(),
		logger,
	)

	availabilityHandler := &handlers.AvailabilityHandler{
		Calendar:    calendarService,
		Sessions:    sessionService,
		Assignments: assignmentResolver,
		WindowDays:  config.AppConfig.FutureWindowDays,
	}

	router := routes.SetupRouter(availabilityHandler)

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
