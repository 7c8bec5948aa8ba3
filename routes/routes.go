package routes

import (
	"net/http"
	"time"

	userRepo "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and repos the routes need.
type HandlerBundle struct {
	UserRepo           userRepo.UserRepository
	AuthHandler        *handlers.AuthHandler
	AppointmentHandler *handlers.AppointmentHandler
}

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.AuthHandler.RegisterHandler)
		api.POST("/login", hb.AuthHandler.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/profile", hb.AuthHandler.GetProfileHandler)
		api.PUT("/profile", hb.AuthHandler.UpdateProfileHandler)
		api.PATCH("/change-password", hb.AuthHandler.ChangePasswordHandler)
	}
}

// RegisterAppointmentRoutes sets up the endpoints for the appointment lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/book", hb.AppointmentHandler.BookHandler)
		api.POST("/initiate-payment", hb.AppointmentHandler.InitiatePaymentHandler)
		api.POST("/confirm", hb.AppointmentHandler.ConfirmHandler)
		api.GET("", hb.AppointmentHandler.ListHandler)
		api.DELETE("/cancel/:appointmentId", hb.AppointmentHandler.CancelHandler)
		api.POST("/feedback", hb.AppointmentHandler.FeedbackHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r)
}
