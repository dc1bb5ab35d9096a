package bookings

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
)

// RegisterRoutes mounts booking routes. hotelsGroup is the /hotels group so
// bookings live under /hotels/:id/bookings.
func RegisterRoutes(router, hotelsGroup *gin.RouterGroup, service *Service, issuer *token.Issuer) {
	handler := NewHandler(service)
	auth := middleware.Auth(issuer)

	hotelsGroup.POST("/:id/bookings/payment-intent", auth, handler.CreatePaymentIntent)
	hotelsGroup.POST("/:id/bookings", auth, handler.ConfirmBooking)

	router.GET("/my-bookings", auth, handler.ListMyBookings)
}
