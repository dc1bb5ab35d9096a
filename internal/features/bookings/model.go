package bookings

import "time"

// PaymentIntentRequest asks for a payment intent covering numberOfNights.
type PaymentIntentRequest struct {
	NumberOfNights int `json:"numberOfNights" binding:"required,gt=0" example:"3"`
}

// PaymentIntentResponse is what the client needs to confirm the card payment.
type PaymentIntentResponse struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	TotalCost       float64 `json:"totalCost" example:"2310"`
}

// BookingRequest is the booking form submitted after the payment succeeded.
type BookingRequest struct {
	FirstName       string    `json:"firstName" binding:"required"`
	LastName        string    `json:"lastName" binding:"required"`
	Email           string    `json:"email" binding:"required,email"`
	AdultCount      int       `json:"adultCount" binding:"gte=1"`
	ChildCount      int       `json:"childCount" binding:"gte=0"`
	CheckIn         time.Time `json:"checkIn" binding:"required"`
	CheckOut        time.Time `json:"checkOut" binding:"required,gtfield=CheckIn"`
	PaymentIntentID string    `json:"paymentIntentId" binding:"required"`
	TotalCost       float64   `json:"totalCost" binding:"gte=0"`
}
