package service

import (
	"context"
	"errors"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const anonymousOwner = "Anonymous"

// AppointmentForm is the full appointment record as the admin screens submit
// it. It is used for creation and for full updates.
type AppointmentForm struct {
	PetName      string `json:"petName" validate:"required"`
	OwnerName    string `json:"ownerName" validate:"required"`
	OwnerEmail   string `json:"ownerEmail"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	PetType      string `json:"petType" validate:"required"`
	Breed        string `json:"breed" validate:"required"`
	Friendly     string `json:"friendly"`
	Trained      string `json:"trained"`
	Vaccinated   string `json:"vaccinated"`
	PickupTime   string `json:"pickupTime"`
	DeliveryTime string `json:"deliveryTime"`
	ServiceType  string `json:"serviceType"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
}

// BookingForm is the customer-facing booking request.
type BookingForm struct {
	PetName      string `json:"petName" validate:"required"`
	PetType      string `json:"petType" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Friendly     string `json:"friendly" validate:"required"`
	Trained      string `json:"trained" validate:"required"`
	Vaccinated   string `json:"vaccinated" validate:"required"`
	PickupTime   string `json:"pickupTime" validate:"required"`
	DeliveryTime string `json:"deliveryTime" validate:"required"`
	OwnerName    string `json:"ownerName"`
	OwnerEmail   string `json:"ownerEmail"`
	Breed        string `json:"breed"`
	ServiceType  string `json:"serviceType"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
}

type AppointmentService struct {
	kind   domain.AppointmentKind
	repo   repository.AppointmentRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewAppointmentService(kind domain.AppointmentKind, repo repository.AppointmentRepository, logger *zap.Logger) *AppointmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		kind:   kind,
		repo:   repo,
		logger: logger.Named(string(kind)),
		now:    time.Now,
	}
}

func (s *AppointmentService) Kind() domain.AppointmentKind {
	return s.kind
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, form AppointmentForm) (*domain.Appointment, error) {
	if err := validateStruct(form, "Missing required fields"); err != nil {
		return nil, err
	}
	status, err := parseStatus(form.Status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &domain.Appointment{
		Kind:         s.kind,
		PetName:      form.PetName,
		OwnerName:    form.OwnerName,
		OwnerEmail:   form.OwnerEmail,
		Phone:        form.Phone,
		Address:      form.Address,
		PetType:      form.PetType,
		Breed:        form.Breed,
		Friendly:     form.Friendly,
		Trained:      form.Trained,
		Vaccinated:   form.Vaccinated,
		PickupTime:   form.PickupTime,
		DeliveryTime: form.DeliveryTime,
		ServiceType:  form.ServiceType,
		Notes:        form.Notes,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.insert(ctx, a)
}

// BookAppointment stores a customer booking. Healthcare bookings without
// owner details are recorded as anonymous.
func (s *AppointmentService) BookAppointment(ctx context.Context, form BookingForm) (*domain.Appointment, error) {
	if err := validateStruct(form, "Missing required fields"); err != nil {
		return nil, err
	}
	status, err := parseStatus(form.Status)
	if err != nil {
		return nil, err
	}

	if s.kind == domain.AppointmentKindHealthcare {
		if form.OwnerName == "" {
			form.OwnerName = anonymousOwner
		}
		if form.OwnerEmail == "" {
			form.OwnerEmail = anonymousOwner
		}
	}

	now := s.now()
	a := &domain.Appointment{
		Kind:         s.kind,
		PetName:      form.PetName,
		OwnerName:    form.OwnerName,
		OwnerEmail:   form.OwnerEmail,
		Phone:        form.Phone,
		Address:      form.Address,
		PetType:      form.PetType,
		Breed:        form.Breed,
		Friendly:     form.Friendly,
		Trained:      form.Trained,
		Vaccinated:   form.Vaccinated,
		PickupTime:   form.PickupTime,
		DeliveryTime: form.DeliveryTime,
		ServiceType:  form.ServiceType,
		Notes:        form.Notes,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.insert(ctx, a)
}

// ListAppointments returns the newest appointments first.
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	list, err := s.repo.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("repo list appointments error", zap.Error(err))
		return nil, storeFailure("Failed to fetch appointments", err)
	}
	return list, nil
}

// UpdateStatus returns the number of modified appointments, which is 0 when
// the appointment already had the status.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	if status == "" {
		return 0, invalid("status is required", "status")
	}
	st, err := parseStatus(status)
	if err != nil {
		return 0, err
	}

	modified, err := s.repo.UpdateStatus(ctx, id, st, s.now())
	if err != nil {
		return 0, s.appointmentError(err, id, "Failed to update status")
	}
	return modified, nil
}

func (s *AppointmentService) ReplaceAppointment(ctx context.Context, id string, form AppointmentForm) (int64, error) {
	if err := validateStruct(form, "Missing required fields"); err != nil {
		return 0, err
	}
	var status domain.AppointmentStatus
	if form.Status != "" {
		st, err := parseStatus(form.Status)
		if err != nil {
			return 0, err
		}
		status = st
	}

	a := &domain.Appointment{
		Kind:         s.kind,
		PetName:      form.PetName,
		OwnerName:    form.OwnerName,
		OwnerEmail:   form.OwnerEmail,
		Phone:        form.Phone,
		Address:      form.Address,
		PetType:      form.PetType,
		Breed:        form.Breed,
		Friendly:     form.Friendly,
		Trained:      form.Trained,
		Vaccinated:   form.Vaccinated,
		PickupTime:   form.PickupTime,
		DeliveryTime: form.DeliveryTime,
		ServiceType:  form.ServiceType,
		Notes:        form.Notes,
		Status:       status,
		UpdatedAt:    s.now(),
	}

	modified, err := s.repo.ReplaceAppointment(ctx, id, a)
	if err != nil {
		return 0, s.appointmentError(err, id, "Failed to update appointment")
	}
	return modified, nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return s.appointmentError(err, id, "Failed to delete appointment")
	}
	return nil
}

func (s *AppointmentService) insert(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	id, err := s.repo.CreateAppointment(ctx, a)
	if err != nil {
		s.logger.Error("repo create appointment error", zap.Error(err))
		return nil, storeFailure("Failed to create appointment", err)
	}
	if oid, errHex := primitive.ObjectIDFromHex(id); errHex == nil {
		a.ID = oid
	}
	return a, nil
}

func (s *AppointmentService) appointmentError(err error, id, message string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return invalid("Invalid appointment ID", "id")
	case errors.Is(err, repository.ErrAppointmentNotFound):
		return notFound("Appointment not found", err)
	}
	s.logger.Error(message, zap.String("id", id), zap.Error(err))
	return storeFailure(message, err)
}

// parseStatus defaults an empty status to pending.
func parseStatus(status string) (domain.AppointmentStatus, error) {
	if status == "" {
		return domain.AppointmentStatusPending, nil
	}
	st, ok := domain.ParseAppointmentStatus(status)
	if !ok {
		return "", invalid("Invalid status value", "status")
	}
	return st, nil
}
