// File: mechradii/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mechradii/config"
	"mechradii/database"
	bookingRepoPkg "mechradii/database/repository/booking"
	mechanicRepoPkg "mechradii/database/repository/mechanic"
	profileRepoPkg "mechradii/database/repository/profile"
	reviewRepoPkg "mechradii/database/repository/review"
	"mechradii/handlers"
	"mechradii/middleware"
	"mechradii/routes"
	"mechradii/services/booking"
	"mechradii/services/mechanic"
	"mechradii/services/notification"
	"mechradii/services/review"
	"mechradii/services/user"
	"mechradii/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profileRepo := profileRepoPkg.NewMongoProfileRepo()
	mechanicRepo := mechanicRepoPkg.NewMongoMechanicRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:      profileRepo,
		Mechanics: mechanicRepo,
	}
	mechanicService := &mechanic.DefaultMechanicService{
		Repo:     mechanicRepo,
		Profiles: profileRepo,
		Users:    userService,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Mechanics: mechanicRepo,
		Profiles:  profileRepo,
	}
	reviewService := &review.DefaultReviewService{
		Repo:      reviewRepo,
		Mechanics: mechanicRepo,
		Profiles:  profileRepo,
	}

	// Live notification relay.
	hub := notification.NewHub()
	relay := &notification.Relay{
		Bookings: bookingRepo,
		Profiles: profileRepo,
		Hub:      hub,
		FCM:      utils.FCMClient,
	}
	relayCtx, stopRelay := context.WithCancel(context.Background())
	go func() {
		if err := relay.Run(relayCtx); err != nil && err != context.Canceled {
			logger.Sugar().Errorf("main: notification relay exited: %v", err)
		}
	}()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		User:         handlers.NewUserHandler(userService),
		Mechanic:     handlers.NewMechanicHandler(mechanicService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Review:       handlers.NewReviewHandler(reviewService),
		Storage:      handlers.NewStorageHandler(cloudinaryStorageService),
		Notification: handlers.NewNotificationHandler(hub),
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

	stopRelay()
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
