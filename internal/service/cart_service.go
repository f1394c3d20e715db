package service

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/cache"
	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared cache-miss load, which outlives any single
// caller's context.
const fetchTimeout = 5 * time.Second

const generationStripes = 256

type CartService struct {
	repo   repository.CartRepository
	cache  cache.CartCache
	logger *zap.Logger
	sfg    singleflight.Group // Prevents cache stampede
	now    func() time.Time

	// generations[stripe(owner)] is bumped by every invalidation. A cache fill
	// is only kept when its stripe did not move since the store was read.
	generations [generationStripes]atomic.Uint64
	fills       sync.WaitGroup
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("cart"),
		now:    time.Now,
	}
}

// CreateOrReplaceCart stores cart exactly as supplied, replacing any cart the
// owner already has, and returns the stored document id.
func (s *CartService) CreateOrReplaceCart(ctx context.Context, cart *domain.Cart) (string, error) {
	if cart == nil {
		return "", invalid("cart data is required", "cartData")
	}
	cart.Owner = strings.TrimSpace(cart.Owner)
	if cart.Owner == "" {
		return "", invalid("email is required", "email")
	}

	id, err := s.repo.UpsertCart(ctx, cart)
	if err != nil {
		s.logger.Error("repo upsert cart error", zap.String("owner", cart.Owner), zap.Error(err))
		return "", storeFailure("failed to store cart", err)
	}

	s.invalidateCache(cart.Owner)
	return id, nil
}

// GetCart returns the owner's cart, or nil when the owner has none.
func (s *CartService) GetCart(ctx context.Context, owner string) (*domain.Cart, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, invalid("Email is required", "email")
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	ch := s.sfg.DoChan(owner, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return s.loadCart(fetchCtx, owner)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Cart), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *CartService) loadCart(ctx context.Context, owner string) (*domain.Cart, error) {
	cart, err := s.cache.Get(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("cache get error", zap.String("owner", owner), zap.Error(err))
	}

	gen := s.generation(owner).Load()
	cart, errGet := s.repo.GetCart(ctx, owner)
	if errors.Is(errGet, repository.ErrCartNotFound) {
		return nil, nil
	}
	if errGet != nil {
		return nil, storeFailure("Failed to fetch cart", errGet)
	}

	s.fills.Add(1)
	go func() {
		defer s.fills.Done()
		s.fillCache(owner, cart, gen)
	}()

	return cart, nil
}

// fillCache stores cart unless a write invalidated the owner after the cart
// was read. An invalidation racing the Set itself is caught by the second
// check, which drops the entry again.
func (s *CartService) fillCache(owner string, cart *domain.Cart, gen uint64) {
	counter := s.generation(owner)
	if counter.Load() != gen {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, owner, cart); err != nil {
		s.logger.Warn("cache set error", zap.String("owner", owner), zap.Error(err))
		return
	}
	if counter.Load() != gen {
		if err := s.cache.Delete(ctx, owner); err != nil {
			s.logger.Warn("cache invalidate error", zap.String("owner", owner), zap.Error(err))
		}
	}
}

func (s *CartService) generation(owner string) *atomic.Uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return &s.generations[h.Sum32()%generationStripes]
}

// AddItem appends item as a new line of the owner's cart.
func (s *CartService) AddItem(ctx context.Context, owner string, item domain.CartItem) (*domain.Cart, error) {
	item.ProductID = strings.TrimSpace(item.ProductID)
	if err := validateStruct(item, "invalid cart item"); err != nil {
		return nil, err
	}

	return s.mutate(ctx, owner, "add item", func(c *domain.Cart, now time.Time) error {
		c.AddItem(item, now)
		return nil
	})
}

func (s *CartService) IncreaseQuantity(ctx context.Context, owner, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, owner, "increase quantity", func(c *domain.Cart, now time.Time) error {
		return c.IncreaseQuantity(productID, now)
	})
}

// DecreaseQuantity fails with ErrInvalidState when the line is already at
// quantity 1.
func (s *CartService) DecreaseQuantity(ctx context.Context, owner, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, owner, "decrease quantity", func(c *domain.Cart, now time.Time) error {
		return c.DecreaseQuantity(productID, now)
	})
}

// RemoveItem drops every line for productID. An absent product still
// succeeds and leaves items and totals as they were.
func (s *CartService) RemoveItem(ctx context.Context, owner, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, owner, "remove item", func(c *domain.Cart, now time.Time) error {
		c.RemoveItem(productID, now)
		return nil
	})
}

// ClearCart empties the owner's cart. The document itself is kept. An owner
// without a cart is already clear: the result is nil and no error.
func (s *CartService) ClearCart(ctx context.Context, owner string) (*domain.Cart, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, invalid("email is required", "email")
	}

	cart, err := s.repo.ClearCart(ctx, owner, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, nil
		}
		s.logger.Error("repo clear cart error", zap.String("owner", owner), zap.Error(err))
		return nil, storeFailure("failed to clear cart", err)
	}

	s.invalidateCache(owner)
	return cart, nil
}

// mutate runs one read-compute-write cycle against the stored cart. The write
// only succeeds if nobody else wrote the cart since it was read.
func (s *CartService) mutate(ctx context.Context, owner, op string, fn func(*domain.Cart, time.Time) error) (*domain.Cart, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, invalid("email is required", "email")
	}

	// always read the store, never the cache: the version must be current
	cart, err := s.repo.GetCart(ctx, owner)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, notFound("Cart not found", err)
		}
		s.logger.Error("repo get cart error", zap.String("op", op), zap.String("owner", owner), zap.Error(err))
		return nil, storeFailure("failed to load cart", err)
	}

	if err := fn(cart, s.now()); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return nil, notFound("Product not found in cart", err)
		case errors.Is(err, domain.ErrQuantityBelowOne):
			return nil, invalidState("Quantity cannot be less than 1", err)
		default:
			return nil, err
		}
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logger.Info("cart write lost a concurrent update", zap.String("op", op), zap.String("owner", owner))
			return nil, conflict("Cart was modified concurrently, reload and retry", err)
		}
		s.logger.Error("repo save cart error", zap.String("op", op), zap.String("owner", owner), zap.Error(err))
		return nil, storeFailure("failed to save cart", err)
	}

	s.invalidateCache(owner)
	return cart, nil
}

func (s *CartService) invalidateCache(owner string) {
	s.generation(owner).Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, owner); err != nil {
		s.logger.Warn("cache invalidate error", zap.String("owner", owner), zap.Error(err))
	}
}
