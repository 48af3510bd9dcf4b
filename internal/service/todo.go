package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jaekwang-park/todo-app/internal/model"
	"github.com/jaekwang-park/todo-app/internal/repository"
)

type CreateTodoInput struct {
	Title      string
	CategoryID string
}

// UpdateTodoInput carries the fields to change; nil fields are left as is.
type UpdateTodoInput struct {
	Title      *string
	Completed  *bool
	Flagged    *bool
	CategoryID *string
}

type TodoService struct {
	repo       repository.TodoRepository
	categories repository.CategoryRepository
}

func NewTodoService(repo repository.TodoRepository, categories repository.CategoryRepository) *TodoService {
	return &TodoService{repo: repo, categories: categories}
}

func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Todo{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	categoryID, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return model.Todo{}, err
	}

	todo := model.Todo{
		Title:      title,
		CategoryID: categoryID,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return created, nil
}

func (s *TodoService) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	todo, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, todoID string, input UpdateTodoInput) (model.Todo, error) {
	existing, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return model.Todo{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = title
	}
	if input.Completed != nil {
		existing.Completed = *input.Completed
	}
	if input.Flagged != nil {
		existing.Flagged = *input.Flagged
	}
	if input.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *input.CategoryID)
		if err != nil {
			return model.Todo{}, err
		}
		existing.CategoryID = categoryID
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, todoID string) error {
	err := s.repo.Delete(ctx, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// List returns all todos ordered by creation time, newest first.
func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// resolveCategory returns the stored form of a category reference: empty for
// the default category, the id itself for an existing category.
func (s *TodoService) resolveCategory(ctx context.Context, categoryID string) (string, error) {
	categoryID = strings.TrimSpace(categoryID)
	if model.IsDefaultCategory(categoryID) {
		return "", nil
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, categoryID)
		}
		return "", fmt.Errorf("failed to get category: %w", err)
	}
	return categoryID, nil
}
