package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saipoo/foodorder/internal/auth"
	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns registration and login for both principal kinds. Customers
// and admins live in disjoint collections and never mix; the kind baked into
// the issued token decides which route namespace it can reach.
type AuthService struct {
	customerRepo  repo.CustomerRepository
	adminRepo     repo.AdminRepository
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        *zap.SugaredLogger
}

func NewAuthService(
	customerRepo repo.CustomerRepository,
	adminRepo repo.AdminRepository,
	jwtSecret []byte,
	tokenValidity time.Duration,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		customerRepo:  customerRepo,
		adminRepo:     adminRepo,
		jwtSecret:     jwtSecret,
		tokenValidity: tokenValidity,
		logger:        logger,
	}
}

func (s *AuthService) RegisterCustomer(ctx context.Context, name, email, password string) (*domain.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &domain.Customer{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Infow("customer registered", "customer_id", customer.ID.Hex())

	return customer, nil
}

func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Infow("admin registered", "admin_id", admin.ID.Hex())

	return admin, nil
}

// LoginCustomer verifies credentials against the customers collection and
// issues a customer-kind token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (string, *domain.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(customer.ID.Hex(), domain.KindCustomer, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, customer, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.ID.Hex(), domain.KindAdmin, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, admin, nil
}

// VerifyToken parses a token and confirms both the kind claim and that the
// principal still exists. Every failure mode collapses to ErrInvalidCredentials
// at this layer; the handler turns it into a generic 401.
func (s *AuthService) VerifyToken(ctx context.Context, token string, wantKind domain.PrincipalKind) (*domain.Customer, *domain.Admin, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if claims.Kind != wantKind {
		return nil, nil, ErrInvalidCredentials
	}

	id, err := primitive.ObjectIDFromHex(claims.PrincipalID)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	switch wantKind {
	case domain.KindCustomer:
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, ErrInvalidCredentials
		}
		return customer, nil, nil
	case domain.KindAdmin:
		admin, err := s.adminRepo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, admin, nil
	default:
		return nil, nil, ErrInvalidCredentials
	}
}
