package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CartsCollection      = "carts"
	ProductsCollection   = "products"
	UsersCollection      = "users"
	ThreadsCollection    = "threads"
	PaymentsCollection   = "payments"
	GroomingCollection   = "grooming"
	HealthcareCollection = "healthcare"
)

// ConnectMongoDB opens a pooled client and returns the named database once
// the primary answers a ping.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	if database == "" {
		return nil, fmt.Errorf("mongo: database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("petverse-server").
		SetConnectTimeout(10*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetRetryWrites(true))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(database), nil
}

// CreateIndexes creates the indexes the repositories rely on.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CartsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	_, err = db.Collection(PaymentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "participantEmail", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}

	for _, name := range []string{GroomingCollection, HealthcareCollection} {
		_, err = db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	return nil
}
