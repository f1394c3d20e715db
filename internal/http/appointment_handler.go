package http

import (
	"context"
	"net/http"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/go-chi/chi/v5"
)

type AppointmentBook interface {
	CreateAppointment(ctx context.Context, form service.AppointmentForm) (*domain.Appointment, error)
	BookAppointment(ctx context.Context, form service.BookingForm) (*domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
	ReplaceAppointment(ctx context.Context, id string, form service.AppointmentForm) (int64, error)
	DeleteAppointment(ctx context.Context, id string) error
}

// AppointmentHandler serves one appointment kind, e.g. /grooming.
type AppointmentHandler struct {
	book AppointmentBook
}

func NewAppointmentHandler(book AppointmentBook) *AppointmentHandler {
	return &AppointmentHandler{book: book}
}

type BookingResponse struct {
	Message     string              `json:"message"`
	InsertedID  string              `json:"insertedId"`
	Appointment *domain.Appointment `json:"appointment"`
}

type StatusRequestDTO struct {
	Status string `json:"status"`
}

type ModifiedResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

type DeletedResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

func (h *AppointmentHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/appointment", h.Book)
	r.Patch("/{id}", h.UpdateStatus)
	r.Put("/{id}", h.Replace)
	r.Delete("/{id}", h.Delete)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form service.AppointmentForm
	if err := decodeJSON(w, r, &form); err != nil {
		respondBadBody(w, err)
		return
	}

	a, err := h.book.CreateAppointment(r.Context(), form)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var form service.BookingForm
	if err := decodeJSON(w, r, &form); err != nil {
		respondBadBody(w, err)
		return
	}

	a, err := h.book.BookAppointment(r.Context(), form)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, BookingResponse{
		Message:     "Appointment created successfully",
		InsertedID:  a.ID.Hex(),
		Appointment: a,
	})
}

// List returns the newest appointments first.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.book.ListAppointments(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	modified, err := h.book.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ModifiedResponse{
		Message:       "Status updated successfully",
		ModifiedCount: modified,
	})
}

func (h *AppointmentHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var form service.AppointmentForm
	if err := decodeJSON(w, r, &form); err != nil {
		respondBadBody(w, err)
		return
	}

	modified, err := h.book.ReplaceAppointment(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ModifiedResponse{
		Message:       "Appointment updated successfully",
		ModifiedCount: modified,
	})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.book.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, DeletedResponse{
		Message:      "Appointment deleted successfully",
		DeletedCount: 1,
	})
}
