package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/payments"
	"github.com/dbakibillah/petVerse-server/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type EventPublisher interface {
	PublishPaymentCompleted(ctx context.Context, event domain.PaymentCompleted) error
}

// PaymentRequest is a completed card payment reported by the client.
type PaymentRequest struct {
	Email         string  `json:"email" validate:"required"`
	CampID        string  `json:"campId" validate:"required"`
	CampName      string  `json:"campName"`
	Amount        float64 `json:"amount" validate:"required"`
	TransactionID string  `json:"transactionId" validate:"required"`
}

type PaymentService struct {
	gateway   payments.Gateway
	repo      repository.PaymentRepository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

// NewPaymentService wires the payment flow. A nil gateway rejects intents as
// unavailable and a nil publisher skips event publishing.
func NewPaymentService(gateway payments.Gateway, repo repository.PaymentRepository, publisher EventPublisher, logger *zap.Logger) *PaymentService {
	if gateway == nil {
		gateway = payments.Unavailable()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		gateway:        gateway,
		repo:           repo,
		publisher:      publisher,
		logger:         logger.Named("payments"),
		now:            time.Now,
		publishTimeout: 5 * time.Second,
	}
}

// CreatePaymentIntent returns the client secret of a new USD card intent for
// amount dollars.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", invalid("Invalid amount", "amount")
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, payments.IntentRequest{
		Amount:   decimal.NewFromFloat(amount),
		Currency: payments.DefaultCurrency,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount):
			return "", invalid("Invalid amount", "amount")
		case errors.Is(err, payments.ErrGatewayUnavailable):
			return "", &Error{Kind: ErrGatewayUnavailable, Message: "Payment gateway unavailable", Err: err}
		}
		s.logger.Error("create payment intent error", zap.Float64("amount", amount), zap.Error(err))
		return "", &Error{Kind: ErrGateway, Message: "Payment gateway error", Err: err}
	}
	return intent.ClientSecret, nil
}

// RecordPayment stores the payment and announces it to other consumers.
func (s *PaymentService) RecordPayment(ctx context.Context, req PaymentRequest) (*domain.PaymentRecord, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req, "Missing required fields"); err != nil {
		return nil, err
	}

	record := &domain.PaymentRecord{
		ParticipantEmail: req.Email,
		CampID:           req.CampID,
		CampName:         req.CampName,
		Amount:           req.Amount,
		TransactionID:    req.TransactionID,
		Date:             s.now(),
	}

	if _, err := s.repo.CreatePayment(ctx, record); err != nil {
		s.logger.Error("repo create payment error", zap.String("email", req.Email), zap.Error(err))
		return nil, storeFailure("Payment failed", err)
	}

	s.publishCompleted(domain.PaymentCompleted{
		Email:         record.ParticipantEmail,
		TransactionID: record.TransactionID,
		Amount:        record.Amount,
		CompletedAt:   record.Date,
	})
	return record, nil
}

// PaymentHistory returns the payer's payments, newest first.
func (s *PaymentService) PaymentHistory(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email is required", "email")
	}

	list, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error("repo list payments error", zap.String("email", email), zap.Error(err))
		return nil, storeFailure("failed to fetch payments", err)
	}
	if len(list) == 0 {
		return nil, notFound("No payments found", nil)
	}
	return list, nil
}

func (s *PaymentService) publishCompleted(event domain.PaymentCompleted) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()
		if err := s.publisher.PublishPaymentCompleted(ctx, event); err != nil {
			s.logger.Error("publish payment event error",
				zap.String("email", event.Email),
				zap.String("transaction_id", event.TransactionID),
				zap.Error(err),
			)
		}
	}()
}
