package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sorail742/task-manager-frontend/internal/models"
	"github.com/sorail742/task-manager-frontend/internal/repository"
)

// fakeUserRepo implements UserRepository in memory for testing.
type fakeUserRepo struct {
	users map[string]models.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u models.User) error {
	if _, ok := f.users[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.Identity, error) {
	var out []models.Identity
	for _, u := range f.users {
		out = append(out, u.Identity())
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeIssuer implements TokenIssuer.
type fakeIssuer struct{}

func (fakeIssuer) Issue(userID string, role models.Role) (string, error) {
	return "token-for-" + userID, nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeIssuer{})

	id, err := svc.Register(context.Background(), "Alice", "A@B.com", "secret", models.RoleMember)
	require.NoError(t, err)
	assert.NotEmpty(t, id.ID)
	assert.Equal(t, "a@b.com", id.Email, "email is normalized")

	stored := repo.users["a@b.com"]
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("secret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeIssuer{})

	_, err := svc.Register(context.Background(), "Alice", "a@b.com", "secret", models.RoleMember)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other", "a@b.com", "secret2", models.RoleMember)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeIssuer{})

	_, err := svc.Register(context.Background(), "", "a@b.com", "x", models.RoleMember)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "Alice", "a@b.com", "x", models.Role("owner"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeIssuer{})

	created, err := svc.Register(context.Background(), "Alice", "a@b.com", "secret", models.RoleAdmin)
	require.NoError(t, err)

	tok, identity, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+created.ID, tok)
	assert.Equal(t, created, identity)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeIssuer{})
	_, err := svc.Register(context.Background(), "Alice", "a@b.com", "secret", models.RoleMember)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeIssuer{})
	_, _, err := svc.Login(context.Background(), "ghost@b.com", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeIssuer{})
	created, err := svc.Register(context.Background(), "Alice", "a@b.com", "secret", models.RoleMember)
	require.NoError(t, err)

	id, err := svc.Identity(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, id)

	_, err = svc.Identity(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
