package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	PaymentCompletedTopic = "payment-completed"
	eventTypeHeader       = "event_type"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

func NewKafkaPublisher(log *zap.Logger, brokers ...string) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  PaymentCompletedTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		ErrorLogger:            kafka.LoggerFunc(logger.Printf(log, zapcore.ErrorLevel)),
	}
	return &KafkaPublisher{writer: w, logger: log.Named("publisher")}
}

// PublishPaymentCompleted writes the event keyed by the payer's email, so
// events of one payer stay ordered.
func (p *KafkaPublisher) PublishPaymentCompleted(ctx context.Context, event domain.PaymentCompleted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payment event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Email),
		Value: payload,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(PaymentCompletedTopic)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish payment event failed: %w", err)
	}

	p.logger.Debug("payment event published",
		zap.String("email", event.Email),
		zap.String("transaction_id", event.TransactionID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
