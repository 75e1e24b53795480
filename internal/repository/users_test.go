package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestUserCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	u := models.User{ID: "u1", Name: "Alice", Email: "a@b.com", Role: models.RoleMember, PasswordHash: []byte("hash")}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, name, email, role, password_hash) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(u.ID, u.Name, u.Email, u.Role, u.PasswordHash).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), models.User{ID: "u1", Email: "a@b.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserFindByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash"}).
		AddRow("u1", "Alice", "a@b.com", "admin", []byte("hash"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, role, password_hash FROM users WHERE email = $1`)).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	u, err := repo.FindByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" || u.Role != models.RoleAdmin {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestUserFindByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, role, password_hash FROM users WHERE email = $1`)).
		WithArgs("missing@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash"}))

	_, err := repo.FindByEmail(context.Background(), "missing@b.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserList(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "role"}).
		AddRow("u1", "Alice", "a@b.com", "admin").
		AddRow("u2", "Bob", "b@b.com", "member")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, role FROM users ORDER BY created_at`)).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[1].Name != "Bob" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestUserDelete(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserDelete_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
