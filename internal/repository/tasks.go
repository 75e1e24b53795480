package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// PostgresTaskRepository implements task persistence using a PostgreSQL database.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a repository over the given connection.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

const taskColumns = `id, title, description, priority, status, created_by, created_at`

// Create inserts a new task.
func (r *PostgresTaskRepository) Create(ctx context.Context, t models.Task) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO tasks (id, title, description, priority, status, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, t.Description, t.Priority, t.Status, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Get returns the task with the given id, or ErrNotFound.
func (r *PostgresTaskRepository) Get(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.CreatedBy, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	return &t, nil
}

// ListAll returns every task, oldest first.
func (r *PostgresTaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
}

// ListByCreator returns the tasks created by one user, oldest first.
func (r *PostgresTaskRepository) ListByCreator(ctx context.Context, userID string) ([]models.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE created_by = $1 ORDER BY created_at`, userID)
}

func (r *PostgresTaskRepository) list(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Update rewrites the mutable columns of a task, or returns ErrNotFound.
func (r *PostgresTaskRepository) Update(ctx context.Context, t models.Task) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE tasks SET title = $2, description = $3, priority = $4, status = $5 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Priority, t.Status,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the task with the given id, or returns ErrNotFound.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
