package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentKind string

const (
	AppointmentKindGrooming   AppointmentKind = "grooming"
	AppointmentKindHealthcare AppointmentKind = "healthcare"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// ParseAppointmentStatus matches s case-insensitively against the known statuses.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	for _, st := range AppointmentStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

func (s AppointmentStatus) String() string {
	return string(s)
}

type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Kind         AppointmentKind    `bson:"kind" json:"kind"`
	PetName      string             `bson:"petName" json:"petName"`
	OwnerName    string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	OwnerEmail   string             `bson:"ownerEmail,omitempty" json:"ownerEmail,omitempty"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	PetType      string             `bson:"petType" json:"petType"`
	Breed        string             `bson:"breed,omitempty" json:"breed,omitempty"`
	Friendly     string             `bson:"friendly,omitempty" json:"friendly,omitempty"`
	Trained      string             `bson:"trained,omitempty" json:"trained,omitempty"`
	Vaccinated   string             `bson:"vaccinated,omitempty" json:"vaccinated,omitempty"`
	PickupTime   string             `bson:"pickupTime,omitempty" json:"pickupTime,omitempty"`
	DeliveryTime string             `bson:"deliveryTime,omitempty" json:"deliveryTime,omitempty"`
	ServiceType  string             `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status       AppointmentStatus  `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
