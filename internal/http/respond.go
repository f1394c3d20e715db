package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/dbakibillah/petVerse-server/pkg/logger"
	"go.uber.org/zap"
)

const maxRequestBodySize = 1 << 20 // 1MB

type ErrorResponse struct {
	Message       string   `json:"message"`
	Code          string   `json:"code,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// MessageResponse is the envelope of cart mutations: a confirmation plus the
// cart as stored after the operation.
type MessageResponse struct {
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

type InsertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// handleServiceError converts service errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, service.ErrValidation):
		httpStatus, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, service.ErrNotFound):
		httpStatus, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidState):
		httpStatus, code = http.StatusBadRequest, "invalid_state"
	case errors.Is(err, service.ErrConflict):
		httpStatus, code = http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrGatewayUnavailable):
		httpStatus, code = http.StatusServiceUnavailable, "service_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus, code = http.StatusGatewayTimeout, "timeout"
	default:
		httpStatus, code = http.StatusInternalServerError, "internal_error"
	}

	resp := ErrorResponse{Message: "Internal server error", Code: code}
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		resp.Message = svcErr.Message
		resp.MissingFields = svcErr.Fields
	} else if httpStatus == http.StatusGatewayTimeout {
		resp.Message = "Request timed out"
	}

	if httpStatus >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			zap.Int("status", httpStatus),
			zap.Error(err),
		)
	}

	respondJSON(w, httpStatus, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func respondBadBody(w http.ResponseWriter, err error) {
	respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
}
