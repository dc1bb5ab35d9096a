package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xyz-asif/gohotels/internal/features/hotels"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	"github.com/xyz-asif/gohotels/internal/pkg/payment"
	"github.com/xyz-asif/gohotels/internal/pkg/tracing"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = tracing.Tracer("bookings")

// Options configures the booking service.
type Options struct {
	Currency string
	// VerifyPayments re-reads the payment intent from the processor before a
	// booking is stored. When false the client's totalCost is trusted.
	VerifyPayments bool
}

// Service orchestrates payment intents and booking confirmation.
type Service struct {
	store     hotels.Store
	processor payment.Processor
	opts      Options
}

// NewService wires the service. processor may be nil when payments are not configured.
func NewService(store hotels.Store, processor payment.Processor, opts Options) *Service {
	if opts.Currency == "" {
		opts.Currency = "gbp"
	}
	return &Service{store: store, processor: processor, opts: opts}
}

// TotalCost is pricePerNight × nights rounded to minor units.
func TotalCost(pricePerNight float64, nights int) decimal.Decimal {
	return decimal.NewFromFloat(pricePerNight).Mul(decimal.NewFromInt(int64(nights))).Round(2)
}

// CreatePaymentIntent opens a payment for nights at the hotel's current price.
func (s *Service) CreatePaymentIntent(ctx context.Context, hotelID, userID string, nights int) (*PaymentIntentResponse, error) {
	ctx, span := tracer.Start(ctx, "bookings.create_payment_intent")
	defer span.End()
	span.SetAttributes(attribute.String("hotel.id", hotelID), attribute.Int("booking.nights", nights))

	if nights < 1 {
		return nil, fmt.Errorf("%w: numberOfNights must be at least 1", apperrors.ErrValidation)
	}

	hotel, err := s.store.GetByID(ctx, hotelID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	if s.processor == nil {
		return nil, fmt.Errorf("%w: payments are not configured", apperrors.ErrUpstream)
	}

	total := TotalCost(hotel.PricePerNight, nights)

	intent, err := s.processor.CreateIntent(ctx, payment.IntentRequest{
		Amount:   payment.ToMinorUnits(total),
		Currency: s.opts.Currency,
		Metadata: map[string]string{
			payment.MetaHotelID: hotelID,
			payment.MetaUserID:  userID,
		},
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if intent.ClientSecret == "" {
		err := fmt.Errorf("%w: payment intent %s has no client secret", apperrors.ErrUpstream, intent.ID)
		tracing.RecordError(span, err)
		return nil, err
	}

	return &PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		TotalCost:       total.InexactFloat64(),
	}, nil
}

// ConfirmBooking stores a booking for userID on hotelID.
func (s *Service) ConfirmBooking(ctx context.Context, hotelID, userID string, req BookingRequest) (*hotels.Booking, error) {
	ctx, span := tracer.Start(ctx, "bookings.confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("hotel.id", hotelID),
		attribute.String("payment.intent_id", req.PaymentIntentID),
		attribute.Bool("payment.verified", s.opts.VerifyPayments),
	)

	totalCost := decimal.NewFromFloat(req.TotalCost)

	if s.opts.VerifyPayments {
		amount, err := s.verifyPayment(ctx, hotelID, userID, req.PaymentIntentID)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		totalCost = amount
	}

	booking := hotels.Booking{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           strings.TrimSpace(req.Email),
		AdultCount:      req.AdultCount,
		ChildCount:      req.ChildCount,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		TotalCost:       totalCost.InexactFloat64(),
		PaymentIntentID: req.PaymentIntentID,
	}

	if err := s.store.AddBooking(ctx, hotelID, booking); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("hotelId", hotelID).
		Str("bookingId", booking.ID.Hex()).
		Str("paymentIntentId", booking.PaymentIntentID).
		Msg("booking confirmed")

	return &booking, nil
}

// ListMyBookings returns the hotels userID booked with only their bookings attached.
func (s *Service) ListMyBookings(ctx context.Context, userID string) ([]hotels.Hotel, error) {
	return s.store.ListBookedByUser(ctx, userID)
}

// verifyPayment checks the intent server-side and returns the amount actually paid.
func (s *Service) verifyPayment(ctx context.Context, hotelID, userID, intentID string) (decimal.Decimal, error) {
	if s.processor == nil {
		return decimal.Zero, fmt.Errorf("%w: payments are not configured", apperrors.ErrUpstream)
	}

	intent, err := s.processor.GetIntent(ctx, intentID)
	if err != nil {
		return decimal.Zero, err
	}

	if intent.Metadata[payment.MetaHotelID] != hotelID || intent.Metadata[payment.MetaUserID] != userID {
		return decimal.Zero, fmt.Errorf("%w: intent %s belongs to another booking", apperrors.ErrPaymentNotVerified, intentID)
	}
	if intent.Status != payment.StatusSucceeded {
		return decimal.Zero, fmt.Errorf("%w: intent %s status %s", apperrors.ErrPaymentNotVerified, intentID, intent.Status)
	}

	return payment.FromMinorUnits(intent.Amount), nil
}
