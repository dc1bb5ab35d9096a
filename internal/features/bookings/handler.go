package bookings

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/response"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
)

// Handler handles payment and booking requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePaymentIntent godoc
// @Summary Create a payment intent
// @Description Prices the stay at pricePerNight × numberOfNights and opens a card payment for it
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body PaymentIntentRequest true "Stay length"
// @Success 200 {object} PaymentIntentResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /hotels/{id}/bookings/payment-intent [post]
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.CreatePaymentIntent(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.NumberOfNights)
	if err != nil {
		response.FromError(c, err, "Hotel not found")
		return
	}

	response.Success(c, out)
}

// ConfirmBooking godoc
// @Summary Confirm a booking
// @Description Stores the booking once its payment intent has succeeded
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body BookingRequest true "Booking form"
// @Success 200 {object} hotels.Booking
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /hotels/{id}/bookings [post]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	booking, err := h.service.ConfirmBooking(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.BadRequest(c, "Booking already exists for this payment", "BOOKING_EXISTS")
			return
		}
		response.FromError(c, err, "Hotel not found")
		return
	}

	response.Success(c, booking)
}

// ListMyBookings godoc
// @Summary List my bookings
// @Description Hotels the caller has booked, each with only the caller's bookings
// @Tags bookings
// @Produce json
// @Success 200 {array} hotels.Hotel
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /my-bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	list, err := h.service.ListMyBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, list)
}
