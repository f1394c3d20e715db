package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
)

type CartManager interface {
	CreateOrReplaceCart(ctx context.Context, cart *domain.Cart) (string, error)
	GetCart(ctx context.Context, owner string) (*domain.Cart, error)
	AddItem(ctx context.Context, owner string, item domain.CartItem) (*domain.Cart, error)
	IncreaseQuantity(ctx context.Context, owner, productID string) (*domain.Cart, error)
	DecreaseQuantity(ctx context.Context, owner, productID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner, productID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, owner string) (*domain.Cart, error)
}

type CartHandler struct {
	carts   CartManager
	timeout time.Duration
}

func NewCartHandler(carts CartManager, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type CreateCartRequestDTO struct {
	CartData *domain.Cart `json:"cartData"`
}

type AddItemRequestDTO struct {
	Email   string          `json:"email"`
	NewItem domain.CartItem `json:"newItem"`
}

type CartItemRequestDTO struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
}

type ClearCartRequestDTO struct {
	Email string `json:"email"`
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateCartRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	id, err := h.carts.CreateOrReplaceCart(ctx, req.CartData)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, InsertResponse{Acknowledged: true, InsertedID: id})
}

// GetCart responds with the cart, or null when the user has none.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Email is required")
		return
	}

	cart, err := h.carts.GetCart(ctx, email)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	cart, err := h.carts.AddItem(ctx, req.Email, req.NewItem)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, "Quantity increased", h.carts.IncreaseQuantity)
}

func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, "Quantity decreased", h.carts.DecreaseQuantity)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, "Item deleted from cart", h.carts.RemoveItem)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ClearCartRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	cart, err := h.carts.ClearCart(ctx, req.Email)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Cart cleared", Result: cart})
}

func (h *CartHandler) mutateItem(w http.ResponseWriter, r *http.Request, message string,
	op func(ctx context.Context, owner, productID string) (*domain.Cart, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CartItemRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "productId is required")
		return
	}

	cart, err := op(ctx, req.Email, req.ProductID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: message, Result: cart})
}
