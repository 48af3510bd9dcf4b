package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-app/internal/model"
)

type SQLCategoryRepository struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

func NewSQLCategory(db *sql.DB, driver string) *SQLCategoryRepository {
	return &SQLCategoryRepository{db: db, driver: driver, now: time.Now}
}

func (r *SQLCategoryRepository) Create(ctx context.Context, category model.Category) (model.Category, error) {
	category.ID = uuid.NewString()
	category.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	query := rebind(r.driver, `
		INSERT INTO categories (id, name, created_at)
		VALUES (?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.CreatedAt); err != nil {
		return model.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

func (r *SQLCategoryRepository) GetByID(ctx context.Context, categoryID string) (model.Category, error) {
	query := rebind(r.driver, `
		SELECT id, name, created_at
		FROM categories
		WHERE id = ?`)

	row := r.db.QueryRowContext(ctx, query, categoryID)
	return scanCategory(row)
}

// List returns every category, newest first.
func (r *SQLCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func scanCategory(row scannable) (model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

var _ CategoryRepository = (*SQLCategoryRepository)(nil)
