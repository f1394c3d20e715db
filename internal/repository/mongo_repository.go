package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection Collection
}

func (m mongoRepository) GetCart(ctx context.Context, owner string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"email": owner}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m mongoRepository) UpsertCart(ctx context.Context, cart *domain.Cart) (string, error) {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	if cart.LastModifiedAt.IsZero() {
		cart.LastModifiedAt = time.Now()
	}

	filter := bson.M{"email": cart.Owner}
	update := bson.M{
		"$set": bson.M{
			"cartItems":  items,
			"totalItems": cart.TotalItemCount,
			"totalPrice": cart.TotalPrice,
			"updatedAt":  cart.LastModifiedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.Cart
	if err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return "", fmt.Errorf("failed to upsert cart: %w", err)
	}

	cart.ID = stored.ID
	cart.Version = stored.Version
	return stored.ID.Hex(), nil
}

func (m mongoRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	filter := bson.M{"email": cart.Owner, "version": cart.Version}
	if cart.Version == 0 {
		// carts written before versioning have no version field
		filter = bson.M{
			"email": cart.Owner,
			"$or": bson.A{
				bson.M{"version": bson.M{"$exists": false}},
				bson.M{"version": 0},
			},
		}
	}

	next := *cart
	next.Version = cart.Version + 1
	if next.Items == nil {
		next.Items = []domain.CartItem{}
	}

	result, err := m.collection.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	cart.Version = next.Version
	return nil
}

func (m mongoRepository) ClearCart(ctx context.Context, owner string, now time.Time) (*domain.Cart, error) {
	filter := bson.M{"email": owner}
	update := bson.M{
		"$set": bson.M{
			"cartItems":  []domain.CartItem{},
			"totalItems": 0,
			"totalPrice": 0,
			"updatedAt":  now,
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart domain.Cart
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return &cart, nil
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return NewCartRepository(db.Collection(CartsCollection))
}

// NewCartRepository builds a CartRepository over any Collection.
func NewCartRepository(c Collection) CartRepository {
	return &mongoRepository{
		collection: c,
	}
}
