package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type appointmentRepository struct {
	collection Collection
}

// NewAppointmentRepository returns the repository backing one appointment kind.
// Each kind lives in its own collection.
func NewAppointmentRepository(db *mongo.Database, kind domain.AppointmentKind) AppointmentRepository {
	name := GroomingCollection
	if kind == domain.AppointmentKindHealthcare {
		name = HealthcareCollection
	}
	return &appointmentRepository{collection: db.Collection(name)}
}

func (r appointmentRepository) CreateAppointment(ctx context.Context, a *domain.Appointment) (string, error) {
	res, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return "", fmt.Errorf("failed to create appointment: %w", err)
	}
	return insertedID(res), nil
}

func (r appointmentRepository) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	appointments := []domain.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

func (r appointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, now time.Time) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update appointment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return 0, ErrAppointmentNotFound
	}
	return result.ModifiedCount, nil
}

func (r appointmentRepository) ReplaceAppointment(ctx context.Context, id string, a *domain.Appointment) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	update := bson.M{
		"kind":         a.Kind,
		"petName":      a.PetName,
		"ownerName":    a.OwnerName,
		"ownerEmail":   a.OwnerEmail,
		"phone":        a.Phone,
		"address":      a.Address,
		"petType":      a.PetType,
		"breed":        a.Breed,
		"friendly":     a.Friendly,
		"trained":      a.Trained,
		"vaccinated":   a.Vaccinated,
		"pickupTime":   a.PickupTime,
		"deliveryTime": a.DeliveryTime,
		"serviceType":  a.ServiceType,
		"notes":        a.Notes,
		"updatedAt":    a.UpdatedAt,
	}
	if a.Status != "" {
		update["status"] = a.Status
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return 0, fmt.Errorf("failed to update appointment: %w", err)
	}
	if result.MatchedCount == 0 {
		return 0, ErrAppointmentNotFound
	}
	return result.ModifiedCount, nil
}

func (r appointmentRepository) DeleteAppointment(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
