package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"photostudio/handlers"
)

// HandlerBundle collects the handlers the router needs.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Payment  *handlers.PaymentHandler
	Broker   *handlers.BrokerHandler
	Health   *handlers.HealthHandler
	Consumer *handlers.ConsumerHandler
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterBrokerRoutes(r, hb)
	RegisterConsumerRoutes(r, hb)
	r.GET("/health", hb.Health.Health)
}

// RegisterBookingRoutes registers all endpoints for the booking service.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListBookings)
		api.GET("/availability", hb.Booking.GetAvailability)
		api.GET("/:id", hb.Booking.GetBooking)
		api.DELETE("/:id", hb.Booking.CancelBooking)
		api.POST("/:id/confirm", hb.Booking.ConfirmBooking)
	}
	r.GET("/api/halls", hb.Consumer.ListHalls)
}

// RegisterPaymentRoutes registers all endpoints for the payment service.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("", hb.Payment.CreatePayment)
		api.GET("/:id", hb.Payment.GetPayment)
		api.POST("/:id/refund", hb.Payment.Refund)
		api.POST("/webhook/:gateway", hb.Payment.Webhook)
	}
}

// RegisterBrokerRoutes registers the broker's publish/subscribe surface.
func RegisterBrokerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/broker")
	{
		api.POST("/publish", hb.Broker.Publish)
		api.GET("/queues", hb.Broker.Queues)
		api.POST("/subscribe", hb.Broker.Subscribe)
	}
}

// RegisterConsumerRoutes registers the consumers' read-only surfaces.
func RegisterConsumerRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/notifications", hb.Consumer.ListNotifications)
	r.GET("/api/integration/events", hb.Consumer.IntegrationEvents)
}
