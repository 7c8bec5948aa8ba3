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
	apptRepoPkg "medibook/database/repository/appointment"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/appointment"
	"medibook/services/notification"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.JWTSecret == "" {
		logger.Sugar().Fatal("main: JWT_SECRET is required")
	}

	database.InitDB()
	utils.InitAuthCache()
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := apptRepoPkg.NewMongoAppointmentRepo()

	// background queue.
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	notifier := notification.NewAsynqEnqueuer(queueClient)

	// services.
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Notifier: notifier,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:           apptRepo,
		UserRepo:       userRepo,
		Notifier:       notifier,
		MaxActive:      config.AppConfig.MaxAppointments,
		PaymentBaseURL: config.AppConfig.PaymentBaseURL,
		PaymentAmount:  config.AppConfig.PaymentAmount,
	}

	// Worker: email delivery and the appointment completion sweep.
	cron.InitWorker(notification.NewSMTPMailer(), appointmentService)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:           userRepo,
		AuthHandler:        handlers.NewAuthHandler(userService),
		AppointmentHandler: handlers.NewAppointmentHandler(appointmentService),
	}
	routes.RegisterRoutes(router, handlerBundle)

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
