package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/go-chi/chi/v5"
)

type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amount float64) (string, error)
	RecordPayment(ctx context.Context, req service.PaymentRequest) (*domain.PaymentRecord, error)
	PaymentHistory(ctx context.Context, email string) ([]domain.PaymentRecord, error)
}

type PaymentHandler struct {
	payments PaymentProcessor
}

func NewPaymentHandler(payments PaymentProcessor) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// PaymentIntentRequestDTO accepts the amount as a JSON number or a numeric string.
type PaymentIntentRequestDTO struct {
	Amount json.Number `json:"amount"`
}

type PaymentIntentResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"clientSecret"`
}

type PaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req PaymentIntentRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}
	amount, err := req.Amount.Float64()
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid amount")
		return
	}

	secret, err := h.payments.CreatePaymentIntent(r.Context(), amount)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, PaymentIntentResponse{Success: true, ClientSecret: secret})
}

func (h *PaymentHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	var req service.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	if _, err := h.payments.RecordPayment(r.Context(), req); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, PaymentResponse{Success: true, Message: "Payment successful"})
}

func (h *PaymentHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.payments.PaymentHistory(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Success: true, Data: list})
}
