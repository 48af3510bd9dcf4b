package repository

import (
	"context"

	"github.com/jaekwang-park/todo-app/internal/model"
)

type TodoRepository interface {
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	GetByID(ctx context.Context, todoID string) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)
	Delete(ctx context.Context, todoID string) error
	List(ctx context.Context) ([]model.Todo, error)
}
