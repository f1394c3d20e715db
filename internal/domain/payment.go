package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ParticipantEmail string             `bson:"participantEmail" json:"participantEmail"`
	CampID           string             `bson:"joinedCampId" json:"joinedCampId"`
	CampName         string             `bson:"campName,omitempty" json:"campName,omitempty"`
	Amount           float64            `bson:"amount" json:"amount"`
	TransactionID    string             `bson:"transactionId" json:"transactionId"`
	Date             time.Time          `bson:"date" json:"date"`
}

// PaymentCompleted is published once a payment has been recorded.
type PaymentCompleted struct {
	Email         string    `json:"email"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	CompletedAt   time.Time `json:"completed_at"`
}
