package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"
)

type stripePaymentIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type StripeConfig struct {
	APIKey   string
	Backends *stripe.Backends
	Logger   *zap.Logger
	// Intents overrides the Stripe client, for tests.
	Intents stripePaymentIntentAPI
}

type StripeGateway struct {
	intents stripePaymentIntentAPI
	logger  *zap.Logger
}

func NewStripeGateway(cfg StripeConfig) (*StripeGateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.Intents == nil {
		return nil, errors.New("stripe: api key is required")
	}

	intents := cfg.Intents
	if intents == nil {
		sc := client.New(apiKey, cfg.Backends)
		intents = sc.PaymentIntents
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StripeGateway{intents: intents, logger: logger.Named("stripe")}, nil
}

// CreatePaymentIntent creates a card-only payment intent for req.Amount.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	cents := ToCents(req.Amount)
	if cents <= 0 {
		return nil, ErrInvalidAmount
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(cents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	key := strings.TrimSpace(req.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}
	params.SetIdempotencyKey(key)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	g.logger.Info("payment intent created",
		zap.String("payment_intent", pi.ID),
		zap.Int64("amount_cents", cents),
		zap.String("currency", currency),
	)

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  cents,
		Currency:     currency,
	}, nil
}
