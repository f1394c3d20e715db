package http

import (
	"context"
	"net/http"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type UserDirectory interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	UserExists(ctx context.Context, email string) (bool, error)
	GetUser(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (string, error)
}

type ProductHandler struct {
	products ProductCatalog
}

func NewProductHandler(products ProductCatalog) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type UserHandler struct {
	users UserDirectory
}

func NewUserHandler(users UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

type UserExistsResponse struct {
	Exists bool `json:"exists"`
}

type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) UserExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.users.UserExists(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, UserExistsResponse{Exists: exists})
}

// GetUser responds with data null when no user has the email.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Success: true, Data: user})
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := decodeJSON(w, r, &user); err != nil {
		respondBadBody(w, err)
		return
	}

	id, err := h.users.CreateUser(r.Context(), &user)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, InsertResponse{Acknowledged: true, InsertedID: id})
}
