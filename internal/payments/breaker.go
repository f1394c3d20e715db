package payments

import (
	"context"
	"errors"

	"github.com/dbakibillah/petVerse-server/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerGateway guards another Gateway with a circuit breaker. Rejected calls
// fail with ErrGatewayUnavailable.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[*Intent]
}

func NewBreakerGateway(next Gateway, cfg circuitbreaker.Config, logger *zap.Logger) *BreakerGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = countsAsSuccess
	}
	if cfg.OnStateChange == nil {
		cfg.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn("payment gateway breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}
	}
	return &BreakerGateway{
		next: next,
		cb:   circuitbreaker.New[*Intent](cfg),
	}
}

func (g *BreakerGateway) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	intent, err := g.cb.Execute(func() (*Intent, error) {
		return g.next.CreatePaymentIntent(ctx, req)
	})
	if err != nil {
		if circuitbreaker.IsRejected(err) {
			return nil, errors.Join(ErrGatewayUnavailable, err)
		}
		return nil, err
	}
	return intent, nil
}

// caller mistakes and cancellations say nothing about processor health
func countsAsSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, context.Canceled)
}
