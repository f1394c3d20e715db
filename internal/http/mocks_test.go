package http

import (
	"context"
	"net/http"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/go-chi/chi/v5"
)

// --- Mocks ---

type CartManagerMock struct {
	cart *domain.Cart
	id   string
	err  error

	lastOwner   string
	lastProduct string
	lastItem    domain.CartItem
}

func (m *CartManagerMock) CreateOrReplaceCart(ctx context.Context, cart *domain.Cart) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if cart != nil {
		m.lastOwner = cart.Owner
	}
	return m.id, nil
}

func (m *CartManagerMock) GetCart(ctx context.Context, owner string) (*domain.Cart, error) {
	m.lastOwner = owner
	return m.cart, m.err
}

func (m *CartManagerMock) AddItem(ctx context.Context, owner string, item domain.CartItem) (*domain.Cart, error) {
	m.lastOwner, m.lastItem = owner, item
	return m.cart, m.err
}

func (m *CartManagerMock) IncreaseQuantity(ctx context.Context, owner, productID string) (*domain.Cart, error) {
	m.lastOwner, m.lastProduct = owner, productID
	return m.cart, m.err
}

func (m *CartManagerMock) DecreaseQuantity(ctx context.Context, owner, productID string) (*domain.Cart, error) {
	m.lastOwner, m.lastProduct = owner, productID
	return m.cart, m.err
}

func (m *CartManagerMock) RemoveItem(ctx context.Context, owner, productID string) (*domain.Cart, error) {
	m.lastOwner, m.lastProduct = owner, productID
	return m.cart, m.err
}

func (m *CartManagerMock) ClearCart(ctx context.Context, owner string) (*domain.Cart, error) {
	m.lastOwner = owner
	return m.cart, m.err
}

type ProductCatalogMock struct {
	products []domain.Product
	err      error
}

func (m ProductCatalogMock) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

func (m ProductCatalogMock) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			return &m.products[i], nil
		}
	}
	return nil, &service.Error{Kind: service.ErrNotFound, Message: "Product not found"}
}

type UserDirectoryMock struct {
	users []domain.User
	id    string
	err   error
}

func (m UserDirectoryMock) ListUsers(ctx context.Context) ([]domain.User, error) {
	return m.users, m.err
}

func (m UserDirectoryMock) UserExists(ctx context.Context, email string) (bool, error) {
	user, err := m.GetUser(ctx, email)
	return user != nil, err
}

func (m UserDirectoryMock) GetUser(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, nil
}

func (m UserDirectoryMock) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	return m.id, m.err
}

type ThreadBoardMock struct {
	threads []domain.Thread
	id      string
	like    *service.LikeResult
	added   bool
	err     error

	lastEmail   string
	lastComment domain.Comment
}

func (m *ThreadBoardMock) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	return m.threads, m.err
}

func (m *ThreadBoardMock) GetThread(ctx context.Context, id string) (*domain.Thread, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.threads {
		if m.threads[i].ID.Hex() == id {
			return &m.threads[i], nil
		}
	}
	return nil, &service.Error{Kind: service.ErrNotFound, Message: "Thread not found"}
}

func (m *ThreadBoardMock) CreateThread(ctx context.Context, thread *domain.Thread) (string, error) {
	return m.id, m.err
}

func (m *ThreadBoardMock) ToggleLike(ctx context.Context, id, userEmail string) (*service.LikeResult, error) {
	m.lastEmail = userEmail
	return m.like, m.err
}

func (m *ThreadBoardMock) AddComment(ctx context.Context, id string, comment domain.Comment) (bool, error) {
	m.lastComment = comment
	return m.added, m.err
}

type AppointmentBookMock struct {
	appointment *domain.Appointment
	list        []domain.Appointment
	modified    int64
	err         error

	lastID     string
	lastStatus string
	lastForm   service.AppointmentForm
	lastBook   service.BookingForm
}

func (m *AppointmentBookMock) CreateAppointment(ctx context.Context, form service.AppointmentForm) (*domain.Appointment, error) {
	m.lastForm = form
	return m.appointment, m.err
}

func (m *AppointmentBookMock) BookAppointment(ctx context.Context, form service.BookingForm) (*domain.Appointment, error) {
	m.lastBook = form
	return m.appointment, m.err
}

func (m *AppointmentBookMock) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return m.list, m.err
}

func (m *AppointmentBookMock) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	m.lastID, m.lastStatus = id, status
	return m.modified, m.err
}

func (m *AppointmentBookMock) ReplaceAppointment(ctx context.Context, id string, form service.AppointmentForm) (int64, error) {
	m.lastID, m.lastForm = id, form
	return m.modified, m.err
}

func (m *AppointmentBookMock) DeleteAppointment(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}

type PaymentProcessorMock struct {
	secret  string
	record  *domain.PaymentRecord
	history []domain.PaymentRecord
	err     error

	lastAmount  float64
	lastRequest service.PaymentRequest
	lastEmail   string
}

func (m *PaymentProcessorMock) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	m.lastAmount = amount
	return m.secret, m.err
}

func (m *PaymentProcessorMock) RecordPayment(ctx context.Context, req service.PaymentRequest) (*domain.PaymentRecord, error) {
	m.lastRequest = req
	return m.record, m.err
}

func (m *PaymentProcessorMock) PaymentHistory(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	m.lastEmail = email
	return m.history, m.err
}

// --- helpers ---

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func notFoundErr(message string) error {
	return &service.Error{Kind: service.ErrNotFound, Message: message}
}
