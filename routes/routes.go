package routes

import (
	"net/http"
	"time"

	"hirelink/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSearchRoutes registers provider discovery endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/search")
	{
		api.GET("/nearby", hb.Search.NearbyHandler)
		api.GET("/pincode/:pincode", hb.Search.PincodeHandler)
	}
}

// RegisterProviderRoutes registers provider management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/top-rated", hb.Provider.TopRatedHandler)
		api.GET("/featured", hb.Provider.FeaturedHandler)
		api.GET("/:id", hb.Provider.GetProviderHandler)
		api.PATCH("/:id", hb.Provider.UpdateProfileHandler)
		api.PUT("/:id/availability", hb.Provider.UpdateAvailabilityHandler)
		api.DELETE("/:id", hb.Provider.DeleteProviderHandler)
	}
}

// RegisterOfferingRoutes registers service offering endpoints.
func RegisterOfferingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.POST("", hb.Offering.CreateOfferingHandler)
		api.GET("/provider/:providerId", hb.Offering.ListProviderOfferingsHandler)
		api.GET("/:id", hb.Offering.GetOfferingHandler)
		api.PATCH("/:id", hb.Offering.UpdateOfferingHandler)
	}
}

// RegisterBookingRoutes registers booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateBookingHandler)
		api.GET("/number/:number", hb.Booking.GetBookingByNumberHandler)
		api.GET("/customer/:customerId", hb.Booking.ListCustomerBookingsHandler)
		api.GET("/provider/:providerId", hb.Booking.ListProviderBookingsHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.PATCH("/:id", hb.Booking.UpdateDetailsHandler)
		api.PATCH("/:id/status", hb.Booking.UpdateStatusHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.POST("", hb.Review.AddReviewHandler)
		api.GET("/provider/:providerId", hb.Review.ProviderReviewsHandler)
		api.PATCH("/:id", hb.Review.UpdateReviewHandler)
	}
}

// RegisterHealthRoute registers the health check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSearchRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterOfferingRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
