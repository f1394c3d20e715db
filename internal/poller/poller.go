package poller

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/publisher"
	"github.com/dbakibillah/petVerse-server/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	consumerGroup = "cart-service-consumer"

	minReadBackoff = 200 * time.Millisecond
	maxReadBackoff = 10 * time.Second
)

type CartClearer interface {
	ClearCart(ctx context.Context, owner string) (*domain.Cart, error)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Poller empties the payer's cart for every payment-completed event.
type Poller struct {
	carts  CartClearer
	reader messageReader
	logger *zap.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewPoller(carts CartClearer, log *zap.Logger, brokers ...string) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       publisher.PaymentCompletedTopic,
		GroupID:     consumerGroup,
		MaxBytes:    10e6, // 10MB
		ErrorLogger: kafka.LoggerFunc(logger.Printf(log, zapcore.ErrorLevel)),
	})
	return &Poller{
		carts:      carts,
		reader:     reader,
		logger:     log.Named("poller"),
		minBackoff: minReadBackoff,
		maxBackoff: maxReadBackoff,
	}
}

// Run consumes until ctx is cancelled. Failed reads are retried with a
// doubling pause, reset by the next successful read.
func (p *Poller) Run(ctx context.Context) {
	var delay time.Duration
	for ctx.Err() == nil {
		if err := p.getMessageAndClearCart(ctx); err == nil {
			delay = 0
			continue
		}

		delay = p.nextBackoff(delay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

func (p *Poller) nextBackoff(prev time.Duration) time.Duration {
	lo, hi := p.minBackoff, p.maxBackoff
	if lo <= 0 {
		lo = minReadBackoff
	}
	if hi < lo {
		hi = maxReadBackoff
	}
	if prev < lo {
		return lo
	}
	if next := prev * 2; next < hi {
		return next
	}
	return hi
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.logger.Warn("error closing reader", zap.Error(err))
	}
}

// getMessageAndClearCart handles one message. Only read failures are
// returned; bad messages and failed clears are logged and skipped.
func (p *Poller) getMessageAndClearCart(ctx context.Context) error {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("error reading message", zap.Error(err))
		}
		return err
	}

	var event domain.PaymentCompleted
	if errUnmarshal := json.Unmarshal(m.Value, &event); errUnmarshal != nil {
		p.logger.Error("error parsing message", zap.Int64("offset", m.Offset), zap.Error(errUnmarshal))
		return nil
	}
	email := strings.TrimSpace(event.Email)
	if email == "" {
		p.logger.Warn("missing email in payment event", zap.Int64("offset", m.Offset))
		return nil
	}

	if _, errClear := p.carts.ClearCart(ctx, email); errClear != nil {
		p.logger.Error("failed to clear cart", zap.String("owner", email), zap.Error(errClear))
		return nil
	}

	p.logger.Info("cart cleared after payment",
		zap.String("owner", email),
		zap.String("transaction_id", event.TransactionID),
	)
	return nil
}
