package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-app/internal/model"
)

// SQLTodoRepository persists todos in Postgres or SQLite.
type SQLTodoRepository struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

func NewSQLTodo(db *sql.DB, driver string) *SQLTodoRepository {
	return &SQLTodoRepository{db: db, driver: driver, now: time.Now}
}

// Create assigns the id and creation time and inserts the todo.
func (r *SQLTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	todo.ID = uuid.NewString()
	todo.CreatedAt = r.now().UTC().Truncate(time.Microsecond)
	if model.IsDefaultCategory(todo.CategoryID) {
		todo.CategoryID = ""
	}

	query := rebind(r.driver, `
		INSERT INTO todos (id, title, completed, flagged, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Completed, todo.Flagged, nullableCategoryID(todo.CategoryID), todo.CreatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to insert todo: %w", err)
	}

	return todo, nil
}

func (r *SQLTodoRepository) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	query := rebind(r.driver, `
		SELECT id, title, completed, flagged, category_id, created_at
		FROM todos
		WHERE id = ?`)

	row := r.db.QueryRowContext(ctx, query, todoID)
	return scanTodo(row)
}

func (r *SQLTodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := rebind(r.driver, `
		UPDATE todos
		SET title = ?, completed = ?, flagged = ?, category_id = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Completed, todo.Flagged, nullableCategoryID(todo.CategoryID), todo.ID,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.Todo{}, sql.ErrNoRows
	}

	return r.GetByID(ctx, todo.ID)
}

func (r *SQLTodoRepository) Delete(ctx context.Context, todoID string) error {
	query := rebind(r.driver, `DELETE FROM todos WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, todoID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// List returns every todo, newest first.
func (r *SQLTodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	query := `
		SELECT id, title, completed, flagged, category_id, created_at
		FROM todos
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

func scanTodo(row scannable) (model.Todo, error) {
	var t model.Todo
	var categoryID sql.NullString
	err := row.Scan(
		&t.ID, &t.Title, &t.Completed, &t.Flagged, &categoryID, &t.CreatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	if categoryID.Valid {
		t.CategoryID = categoryID.String
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func nullableCategoryID(id string) sql.NullString {
	if model.IsDefaultCategory(id) {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}

// ensure compile-time interface compliance
var _ TodoRepository = (*SQLTodoRepository)(nil)
