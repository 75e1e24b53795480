// Package service provides the business logic behind the HTTP
// handlers, delegating persistence to repositories.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// UserRepository defines the persistence operations required by the
// auth and user services.
type UserRepository interface {
	Create(ctx context.Context, u models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.Identity, error)
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs a bearer token for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, role models.Role) (string, error)
}

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService from its dependencies.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates an account with the given role. Passing through
// repository.ErrDuplicateEmail lets the handler answer 409.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role models.Role) (models.Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return models.Identity{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !role.Valid() {
		return models.Identity{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return models.Identity{}, err
	}
	return u.Identity(), nil
}

// Login checks the credentials and issues a bearer token. Both an
// unknown email and a wrong password yield ErrInvalidCredentials so
// the response doesn't reveal which one was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.Identity, error) {
	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", models.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", models.Identity{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", models.Identity{}, fmt.Errorf("issue token: %w", err)
	}
	return signed, u.Identity(), nil
}

// Identity returns the current profile of the user with the given id.
func (s *AuthService) Identity(ctx context.Context, userID string) (models.Identity, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return models.Identity{}, err
	}
	return u.Identity(), nil
}
