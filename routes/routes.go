package routes

import (
	"net/http"
	"time"

	"carrent/handlers"
	"carrent/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	Booking *handlers.BookingHandler
	Signing *handlers.SigningHandler
	Payment *handlers.PaymentHandler
	Staff   *handlers.StaffHandler
}

// RegisterRoutes attaches all endpoints to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Service is healthy"})
	})

	// Gateway callback: signature-verified, no session auth.
	r.POST("/api/payments/webhook", hb.Payment.Webhook)

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", hb.Booking.CreateBooking)
			bookings.GET("", hb.Booking.ListMyRentals)
			bookings.GET("/:id", hb.Booking.GetRental)
			bookings.POST("/:id/cancel", hb.Booking.CancelBooking)
		}

		contracts := api.Group("/contracts")
		{
			contracts.POST("/sign-request", hb.Signing.RequestSigning)
			contracts.POST("/sign", hb.Signing.SubmitSignature)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/checkout", hb.Payment.InitiateCheckout)
			payments.POST("/verify", hb.Payment.VerifySession)
		}

		staff := api.Group("/staff")
		staff.Use(middleware.RequireStaff())
		{
			staff.POST("/rentals/:id/complete", hb.Staff.CompleteRental)
			staff.POST("/contracts/:id/verify", hb.Staff.VerifyContract)
			staff.GET("/cars", hb.Staff.ListCars)
			staff.PUT("/cars/:id/availability", hb.Staff.SetCarAvailability)
		}
	}
}
