package service

import (
	"context"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// UserService implements the admin-facing user management operations.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns every user's identity.
func (s *UserService) List(ctx context.Context) ([]models.Identity, error) {
	return s.repo.List(ctx)
}

// Delete removes a user. Deleting the calling account is rejected, in
// addition to the client-side guard, so a stale client can't do it either.
func (s *UserService) Delete(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return ErrSelfDelete
	}
	return s.repo.Delete(ctx, id)
}
