package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
)

// StripeProcessor implements Processor on top of the Stripe API. Every call
// runs inside a circuit breaker; nothing is retried.
type StripeProcessor struct {
	api *client.API
	cb  *gobreaker.CircuitBreaker
}

// NewStripeProcessor builds a processor for the given secret key.
func NewStripeProcessor(apiKey string) (*StripeProcessor, error) {
	return newStripeProcessor(apiKey, nil)
}

func newStripeProcessor(apiKey string, backends *stripe.Backends) (*StripeProcessor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("stripe api key is required")
	}

	sc := &client.API{}
	sc.Init(apiKey, backends)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stripe",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from, to)
		},
		// a rejected request says nothing about Stripe's health
		IsSuccessful: func(err error) bool {
			return err == nil || isRequestError(err)
		},
	})

	return &StripeProcessor{api: sc, cb: cb}, nil
}

// CreateIntent creates a payment intent for req.Amount minor units.
func (p *StripeProcessor) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.api.PaymentIntents.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", apperrors.ErrUpstream, err)
	}

	return toIntent(out.(*stripe.PaymentIntent)), nil
}

// GetIntent fetches the current state of a payment intent.
func (p *StripeProcessor) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.api.PaymentIntents.Get(id, params)
	})
	if err != nil {
		if isRequestError(err) {
			return nil, fmt.Errorf("%w: payment intent %s: %v", apperrors.ErrPaymentNotVerified, id, err)
		}
		return nil, fmt.Errorf("%w: get payment intent %s: %v", apperrors.ErrUpstream, id, err)
	}

	return toIntent(out.(*stripe.PaymentIntent)), nil
}

// isRequestError reports whether Stripe rejected the request itself: an
// unknown object, bad parameters or a declined payment.
func isRequestError(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}

	switch stripeErr.HTTPStatusCode {
	case http.StatusBadRequest, http.StatusPaymentRequired, http.StatusNotFound:
		return true
	}
	return stripeErr.Code == stripe.ErrorCodeResourceMissing
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}
