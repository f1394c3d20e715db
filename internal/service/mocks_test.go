package service

import (
	"context"
	"sync"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/cache"
	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/repository"
)

type mockRepository struct {
	m     sync.RWMutex
	carts map[string]domain.Cart
	err   error
	// saveErr fails SaveCart only
	saveErr error
	saves   int
}

func newMockRepository(carts ...domain.Cart) *mockRepository {
	r := &mockRepository{carts: map[string]domain.Cart{}}
	for _, c := range carts {
		r.carts[c.Owner] = copyCart(c)
	}
	return r
}

func copyCart(c domain.Cart) domain.Cart {
	c.Items = append([]domain.CartItem(nil), c.Items...)
	return c
}

func (m *mockRepository) GetCart(_ context.Context, owner string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[owner]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	out := copyCart(c)
	return &out, nil
}

func (m *mockRepository) UpsertCart(_ context.Context, c *domain.Cart) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	c.Version = m.carts[c.Owner].Version + 1
	m.carts[c.Owner] = copyCart(*c)
	return "cart-" + c.Owner, nil
}

func (m *mockRepository) SaveCart(_ context.Context, c *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	stored, ok := m.carts[c.Owner]
	if !ok || stored.Version != c.Version {
		return repository.ErrVersionConflict
	}
	c.Version++
	m.carts[c.Owner] = copyCart(*c)
	m.saves++
	return nil
}

func (m *mockRepository) ClearCart(_ context.Context, owner string, now time.Time) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[owner]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	c.Clear(now)
	c.Version++
	m.carts[owner] = c
	out := copyCart(c)
	return &out, nil
}

func (m *mockRepository) stored(owner string) domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return copyCart(m.carts[owner])
}

type mockCache struct {
	m       sync.RWMutex
	cart    *domain.Cart
	err     error
	deletes int
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	m.deletes++
	return m.err
}

func (m *mockCache) getCart() *domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.cart
}

func (m *mockCache) deleteCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.deletes
}

type mockProductRepository struct {
	products []domain.Product
	err      error
}

func (m *mockProductRepository) ListProducts(context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockProductRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			return &m.products[i], nil
		}
	}
	return nil, repository.ErrProductNotFound
}

type mockUserRepository struct {
	users   []domain.User
	created []*domain.User
	err     error
}

func (m *mockUserRepository) ListUsers(context.Context) ([]domain.User, error) {
	return m.users, m.err
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
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

func (m *mockUserRepository) CreateUser(_ context.Context, user *domain.User) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.created = append(m.created, user)
	return "user-1", nil
}

type mockThreadRepository struct {
	thread   *domain.Thread
	created  *domain.Thread
	comments []domain.Comment
	// staleLike makes SetLike report no change, as if a concurrent toggle won
	staleLike bool
	err       error
}

func (m *mockThreadRepository) ListThreads(context.Context) ([]domain.Thread, error) {
	if m.thread == nil {
		return []domain.Thread{}, m.err
	}
	return []domain.Thread{*m.thread}, m.err
}

func (m *mockThreadRepository) GetThread(_ context.Context, id string) (*domain.Thread, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id == "bad" {
		return nil, repository.ErrInvalidID
	}
	if m.thread == nil {
		return nil, repository.ErrThreadNotFound
	}
	t := *m.thread
	return &t, nil
}

func (m *mockThreadRepository) CreateThread(_ context.Context, thread *domain.Thread) (string, error) {
	m.created = thread
	return "thread-1", m.err
}

func (m *mockThreadRepository) SetLike(_ context.Context, _ string, email string, like bool) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.staleLike {
		return false, nil
	}
	if like {
		m.thread.LikedBy = append(m.thread.LikedBy, email)
		m.thread.LikesCount++
		return true, nil
	}
	kept := []string{}
	for _, e := range m.thread.LikedBy {
		if e != email {
			kept = append(kept, e)
		}
	}
	m.thread.LikedBy = kept
	m.thread.LikesCount--
	return true, nil
}

func (m *mockThreadRepository) AddComment(_ context.Context, _ string, c domain.Comment) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.thread == nil {
		return false, nil
	}
	m.comments = append(m.comments, c)
	return true, nil
}

type mockAppointmentRepository struct {
	created  []*domain.Appointment
	replaced *domain.Appointment
	status   domain.AppointmentStatus
	missing  bool
	err      error
}

func (m *mockAppointmentRepository) CreateAppointment(_ context.Context, a *domain.Appointment) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.created = append(m.created, a)
	return "65f1c0ffee0000000000abcd", nil
}

func (m *mockAppointmentRepository) ListAppointments(context.Context) ([]domain.Appointment, error) {
	out := []domain.Appointment{}
	for _, a := range m.created {
		out = append(out, *a)
	}
	return out, m.err
}

func (m *mockAppointmentRepository) UpdateStatus(_ context.Context, _ string, status domain.AppointmentStatus, _ time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.missing {
		return 0, repository.ErrAppointmentNotFound
	}
	m.status = status
	return 1, nil
}

func (m *mockAppointmentRepository) ReplaceAppointment(_ context.Context, _ string, a *domain.Appointment) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.missing {
		return 0, repository.ErrAppointmentNotFound
	}
	m.replaced = a
	return 1, nil
}

func (m *mockAppointmentRepository) DeleteAppointment(context.Context, string) error {
	if m.err != nil {
		return m.err
	}
	if m.missing {
		return repository.ErrAppointmentNotFound
	}
	return nil
}

type mockPaymentRepository struct {
	m       sync.Mutex
	records []domain.PaymentRecord
	err     error
}

func (m *mockPaymentRepository) CreatePayment(_ context.Context, p *domain.PaymentRecord) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.records = append(m.records, *p)
	return "payment-1", nil
}

func (m *mockPaymentRepository) ListByEmail(_ context.Context, email string) ([]domain.PaymentRecord, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.PaymentRecord{}
	for _, r := range m.records {
		if r.ParticipantEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockPublisher struct {
	m      sync.Mutex
	events []domain.PaymentCompleted
	err    error
}

func (m *mockPublisher) PublishPaymentCompleted(_ context.Context, e domain.PaymentCompleted) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.events = append(m.events, e)
	return m.err
}

func (m *mockPublisher) published() []domain.PaymentCompleted {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]domain.PaymentCompleted(nil), m.events...)
}
