package model

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Todos     []Todo    `json:"todos,omitempty"`
}

// DefaultCategory returns the reserved category record.
func DefaultCategory(createdAt time.Time) Category {
	return Category{
		ID:        DefaultCategoryID,
		Name:      DefaultCategoryName,
		CreatedAt: createdAt,
	}
}
