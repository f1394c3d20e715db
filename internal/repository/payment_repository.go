package repository

import (
	"context"
	"fmt"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentRepository struct {
	collection Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &paymentRepository{collection: db.Collection(PaymentsCollection)}
}

func (r paymentRepository) CreatePayment(ctx context.Context, p *domain.PaymentRecord) (string, error) {
	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to store payment: %w", err)
	}
	return insertedID(res), nil
}

func (r paymentRepository) ListByEmail(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participantEmail": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := []domain.PaymentRecord{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}
