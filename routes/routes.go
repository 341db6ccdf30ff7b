package routes

import (
	"medibook/handlers"
	"medibook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, adminHandler *handlers.AdminHandler) {
	booking := r.Group("/api/booking")
	{
		booking.GET("/slots", bookingHandler.GetSlots)
		booking.POST("/session", bookingHandler.StartSession)
		booking.PUT("/session/:sessionID/slot", bookingHandler.SelectSlot)
		booking.PUT("/session/:sessionID/details", bookingHandler.SubmitDetails)
		booking.POST("/session/:sessionID/payment-complete", bookingHandler.PaymentComplete)
		booking.POST("/session/:sessionID/back", bookingHandler.Back)
		booking.DELETE("/session/:sessionID", bookingHandler.Cancel)
	}

	admin := r.Group("/api/admin", middleware.AdminAuthMiddleware())
	{
		admin.GET("/appointments", adminHandler.ListAppointments)
		admin.GET("/health", adminHandler.Health)
	}
}
