// Package payments creates payment intents with the card processor.
package payments

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrGatewayUnavailable is returned when no processor is configured or the
	// breaker in front of it is open.
	ErrGatewayUnavailable = errors.New("payments: gateway unavailable")
	ErrInvalidAmount      = errors.New("payments: amount must be positive")
)

const DefaultCurrency = "usd"

type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

type IntentRequest struct {
	// Amount in major currency units, e.g. dollars.
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// ToCents converts a major-unit amount to minor units, rounding half away
// from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type unavailableGateway struct{}

// Unavailable returns a Gateway that rejects every call. It stands in when no
// processor key is configured.
func Unavailable() Gateway {
	return unavailableGateway{}
}

func (unavailableGateway) CreatePaymentIntent(context.Context, IntentRequest) (*Intent, error) {
	return nil, ErrGatewayUnavailable
}
