package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaekwang-park/todo-app/internal/model"
	"github.com/jaekwang-park/todo-app/internal/repository"
)

type CreateCategoryInput struct {
	Name string
}

type CategoryService struct {
	repo  repository.CategoryRepository
	todos repository.TodoRepository
}

func NewCategoryService(repo repository.CategoryRepository, todos repository.TodoRepository) *CategoryService {
	return &CategoryService{repo: repo, todos: todos}
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

// List returns the persisted categories, newest first, each with its todos.
// The default category is not persisted and is never part of the result.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	todos, err := s.todos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list category todos: %w", err)
	}

	byCategory := make(map[string][]model.Todo)
	for _, t := range todos {
		if t.CategoryID == "" {
			continue
		}
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	result := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		c.Todos = byCategory[c.ID]
		if c.Todos == nil {
			c.Todos = []model.Todo{}
		}
		result = append(result, c)
	}
	return result, nil
}
