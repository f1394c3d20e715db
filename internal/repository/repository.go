package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCartNotFound        = errors.New("cart not found")
	ErrVersionConflict     = errors.New("cart was modified concurrently")
	ErrProductNotFound     = errors.New("product not found")
	ErrThreadNotFound      = errors.New("thread not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidID           = errors.New("invalid id")
)

// Collection is the subset of *mongo.Collection the repositories use.
// *mongo.Collection satisfies it directly.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
}

// CartRepository defines the interface for cart data operations
type CartRepository interface {
	GetCart(ctx context.Context, owner string) (*domain.Cart, error)
	// UpsertCart stores cart as given, replacing any cart of the same owner,
	// and returns the document id.
	UpsertCart(ctx context.Context, cart *domain.Cart) (string, error)
	// SaveCart replaces the stored cart if its version still equals cart.Version.
	// On success cart.Version is advanced.
	SaveCart(ctx context.Context, cart *domain.Cart) error
	ClearCart(ctx context.Context, owner string, now time.Time) (*domain.Cart, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	// FindByEmail returns nil, nil when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (string, error)
}

type ThreadRepository interface {
	ListThreads(ctx context.Context) ([]domain.Thread, error)
	GetThread(ctx context.Context, id string) (*domain.Thread, error)
	CreateThread(ctx context.Context, thread *domain.Thread) (string, error)
	// SetLike adds or removes email from the thread likes. The returned flag
	// is false when the thread was already in the requested state.
	SetLike(ctx context.Context, id, email string, like bool) (bool, error)
	AddComment(ctx context.Context, id string, comment domain.Comment) (bool, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a *domain.Appointment) (string, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, now time.Time) (int64, error)
	ReplaceAppointment(ctx context.Context, id string, a *domain.Appointment) (int64, error)
	DeleteAppointment(ctx context.Context, id string) error
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *domain.PaymentRecord) (string, error)
	ListByEmail(ctx context.Context, email string) ([]domain.PaymentRecord, error)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
