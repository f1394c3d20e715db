package http

import (
	"context"
	"net/http"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/go-chi/chi/v5"
)

type ThreadBoard interface {
	ListThreads(ctx context.Context) ([]domain.Thread, error)
	GetThread(ctx context.Context, id string) (*domain.Thread, error)
	CreateThread(ctx context.Context, thread *domain.Thread) (string, error)
	ToggleLike(ctx context.Context, id, userEmail string) (*service.LikeResult, error)
	AddComment(ctx context.Context, id string, comment domain.Comment) (bool, error)
}

type ThreadHandler struct {
	threads ThreadBoard
}

func NewThreadHandler(threads ThreadBoard) *ThreadHandler {
	return &ThreadHandler{threads: threads}
}

type CreateThreadResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

type ToggleLikeRequestDTO struct {
	UserEmail string `json:"userEmail"`
}

type ToggleLikeResponse struct {
	Success    bool `json:"success"`
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type AddCommentRequestDTO struct {
	NewComment domain.Comment `json:"newComment"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func (h *ThreadHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threads.ListThreads(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, threads)
}

func (h *ThreadHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threads.GetThread(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, thread)
}

func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var thread domain.Thread
	if err := decodeJSON(w, r, &thread); err != nil {
		respondBadBody(w, err)
		return
	}

	id, err := h.threads.CreateThread(r.Context(), &thread)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, CreateThreadResponse{
		Success:    true,
		Message:    "Thread created successfully",
		InsertedID: id,
	})
}

func (h *ThreadHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req ToggleLikeRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	res, err := h.threads.ToggleLike(r.Context(), chi.URLParam(r, "id"), req.UserEmail)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ToggleLikeResponse{
		Success:    true,
		Liked:      res.Liked,
		LikesCount: res.LikesCount,
	})
}

func (h *ThreadHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	ok, err := h.threads.AddComment(r.Context(), chi.URLParam(r, "id"), req.NewComment)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Success: ok})
}
