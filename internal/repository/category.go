package repository

import (
	"context"

	"github.com/jaekwang-park/todo-app/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category model.Category) (model.Category, error)
	GetByID(ctx context.Context, categoryID string) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}
