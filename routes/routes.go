package routes

import (
	"net/http"
	"time"

	"mechradii/handlers"
	"mechradii/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up/sign-in/sign-out endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.User.SignUpHandler)
		api.POST("/signin", hb.User.SignInHandler)
		api.POST("/signout", middleware.JWTAuthMiddleware(), hb.User.SignOutHandler)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.User.GetProfileHandler)
		api.PUT("/me", hb.User.UpdateProfileHandler)
		api.PUT("/me/fcm-token", hb.User.UpdateFCMTokenHandler)
		api.DELETE("/me", hb.User.DeleteAccountHandler)
	}
}

// RegisterMechanicRoutes registers the mechanic registry endpoints. Browsing
// is public; registration works signed in or out, so auth is optional there.
func RegisterMechanicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mechanics")
	{
		api.GET("", hb.Mechanic.ListMechanicsHandler)
		api.GET("/:id", hb.Mechanic.GetMechanicHandler)
		api.GET("/:id/reviews", hb.Review.ListReviewsHandler)
		api.POST("/register", middleware.OptionalJWTAuth(), hb.Mechanic.RegisterMechanicHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/me", hb.Mechanic.UpdateMechanicHandler)
		protected.PUT("/me/availability", hb.Mechanic.ToggleAvailabilityHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Booking.CreateBookingHandler)
		api.GET("", hb.Booking.ListMyBookingsHandler)
		api.GET("/inbox", hb.Booking.ListInboxHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.PUT("/:id/status", hb.Booking.UpdateStatusHandler)
		api.POST("/:id/reply", hb.Booking.ReplyHandler)
	}
}

// RegisterReviewRoutes registers review submission.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Review.SubmitReviewHandler)
	}
}

// RegisterStorageRoutes registers image uploads.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/images", hb.Storage.UploadImageHandler)
		api.DELETE("/images", hb.Storage.DeleteImageHandler)
		api.GET("/signed-url", hb.Storage.GetSignedURLHandler)
	}
}

// RegisterNotificationRoutes registers the live notification stream.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/stream", hb.Notification.StreamHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MechRadii"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterMechanicRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
