package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaekwang-park/todo-app/internal/model"
)

// mockTodoRepo implements repository.TodoRepository for testing
type mockTodoRepo struct {
	createFn  func(ctx context.Context, todo model.Todo) (model.Todo, error)
	getByIDFn func(ctx context.Context, todoID string) (model.Todo, error)
	updateFn  func(ctx context.Context, todo model.Todo) (model.Todo, error)
	deleteFn  func(ctx context.Context, todoID string) error
	listFn    func(ctx context.Context) ([]model.Todo, error)
}

func (m *mockTodoRepo) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	return m.createFn(ctx, todo)
}
func (m *mockTodoRepo) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	return m.getByIDFn(ctx, todoID)
}
func (m *mockTodoRepo) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	return m.updateFn(ctx, todo)
}
func (m *mockTodoRepo) Delete(ctx context.Context, todoID string) error {
	return m.deleteFn(ctx, todoID)
}
func (m *mockTodoRepo) List(ctx context.Context) ([]model.Todo, error) {
	return m.listFn(ctx)
}

// mockCategoryRepo implements repository.CategoryRepository for testing
type mockCategoryRepo struct {
	createFn  func(ctx context.Context, category model.Category) (model.Category, error)
	getByIDFn func(ctx context.Context, categoryID string) (model.Category, error)
	listFn    func(ctx context.Context) ([]model.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, category model.Category) (model.Category, error) {
	return m.createFn(ctx, category)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, categoryID string) (model.Category, error) {
	return m.getByIDFn(ctx, categoryID)
}
func (m *mockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return m.listFn(ctx)
}

// knownCategories returns a category repo that only knows the given ids.
func knownCategories(ids ...string) *mockCategoryRepo {
	return &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, categoryID string) (model.Category, error) {
			for _, id := range ids {
				if id == categoryID {
					return model.Category{ID: id, Name: "Work", CreatedAt: now}, nil
				}
			}
			return model.Category{}, fmt.Errorf("failed to scan category: %w", sql.ErrNoRows)
		},
	}
}

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleTodo() model.Todo {
	return model.Todo{
		ID:        "todo-1",
		Title:     "Buy groceries",
		CreatedAt: now,
	}
}
