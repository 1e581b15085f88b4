package routes

import (
	"time"

	"patitas/handlers"
	"patitas/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.SignIn)
		api.POST("/firebase", hb.User.FirebaseSignIn)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.Tokens))
		api.GET("/me", hb.User.Profile)
		api.POST("/me/avatar", hb.User.UpdateAvatar)
		api.DELETE("/revoke", hb.User.RevokeToken)
	}
}

// RegisterStoreRoutes registers the product catalog and checkout endpoints.
func RegisterStoreRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/store")
	{
		api.GET("/products", hb.Store.ListProducts)
		api.GET("/products/featured", hb.Store.FeaturedProducts)

		api.Use(middleware.JWTAuthUserMiddleware(hb.Tokens))
		api.POST("/checkout", hb.Store.ConfirmPurchase)
	}
}

// RegisterBookingRoutes sets up the endpoints for the appointment workflow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(hb.Tokens))
		bookingGroup.GET("/availability", hb.Booking.Availability)
		bookingGroup.POST("/session", hb.Booking.OpenSession)
		bookingGroup.PUT("/session/:id", hb.Booking.UpdateSession)
		bookingGroup.POST("/session/:id/confirm", hb.Booking.ConfirmSession)
		bookingGroup.DELETE("/session/:id", hb.Booking.CancelSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterStoreRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
