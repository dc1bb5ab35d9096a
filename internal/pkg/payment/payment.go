// Package payment talks to the card processor. Callers depend on Processor so
// handlers and services can be tested without the network.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// StatusSucceeded is the processor status of a captured payment.
const StatusSucceeded = "succeeded"

// Metadata keys attached to every intent.
const (
	MetaHotelID = "hotelId"
	MetaUserID  = "userId"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")

// Intent is the processor-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64 // minor units
	Currency     string
	Status       string
	Metadata     map[string]string
}

// IntentRequest describes a new payment intent.
type IntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Processor creates and looks up payment intents.
type Processor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// ToMinorUnits converts a major-unit amount to the integer minor units the processor expects.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits converts processor minor units back to a major-unit amount.
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
