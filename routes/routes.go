package routes

import (
	"net/http"
	"time"

	"localserve/handlers"
	"localserve/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Admin    *handlers.AdminHandler
	Provider *handlers.ProviderHandler
	Media    *handlers.MediaHandler
}

// RegisterBookingRoutes registers the customer-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateBooking)
		api.POST("/payment/confirm", hb.Booking.ConfirmPayment)
		api.POST("/:id/payment/order", hb.Booking.RetryPaymentOrder)
		api.GET("/:id", hb.Booking.GetBooking)
		if hb.Media != nil {
			api.POST("/:id/media/:phase", hb.Media.UploadPhoto)
		}
	}
}

// RegisterAdminRoutes registers the admin override surface.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.GET("/bookings", hb.Admin.ListBookings)
		api.POST("/bookings/:id/assign", hb.Admin.ManualAssign)
		api.PUT("/bookings/:id/status", hb.Admin.UpdateStatus)
	}
}

// RegisterProviderRoutes registers the provider-facing endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/:id", hb.Provider.GetProvider)
		api.POST("/:id/bookings/:bookingId/accept", hb.Provider.AcceptAssignment)
		api.POST("/:id/bookings/:bookingId/decline", hb.Provider.DeclineAssignment)
		api.PUT("/:id/availability", hb.Provider.UpdateAvailability)
		api.PUT("/:id/location", hb.Provider.UpdateLocation)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterHealthRoute(r)
}
