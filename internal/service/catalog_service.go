package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/repository"
	"go.uber.org/zap"
)

type ProductService struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

func NewProductService(repo repository.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{repo: repo, logger: logger.Named("products")}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("repo list products error", zap.Error(err))
		return nil, storeFailure("failed to fetch products", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidID):
			return nil, invalid("Invalid product ID", "id")
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, notFound("Product not found", err)
		}
		s.logger.Error("repo get product error", zap.String("id", id), zap.Error(err))
		return nil, storeFailure("failed to fetch product", err)
	}
	return product, nil
}

type UserService struct {
	repo   repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger.Named("users"), now: time.Now}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("repo list users error", zap.Error(err))
		return nil, storeFailure("failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) UserExists(ctx context.Context, email string) (bool, error) {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetUser returns nil when no user is registered under email.
func (s *UserService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email is required", "email")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("repo find user error", zap.String("email", email), zap.Error(err))
		return nil, storeFailure("failed to fetch user", err)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	if user == nil {
		return "", invalid("Missing required fields", "name", "email")
	}
	user.Email = strings.TrimSpace(user.Email)
	if err := validateStruct(user, "Missing required fields"); err != nil {
		return "", err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("repo create user error", zap.String("email", user.Email), zap.Error(err))
		return "", storeFailure("failed to create user", err)
	}
	return id, nil
}
