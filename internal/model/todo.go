package model

import "time"

// DefaultCategoryID is the reserved category that exists even when no
// categories have been persisted. Todos without a category belong to it.
const DefaultCategoryID = "default"

// DefaultCategoryName is the display name of the default category.
const DefaultCategoryName = "Reminders"

type Todo struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Completed  bool      `json:"completed"`
	Flagged    bool      `json:"flagged"`
	CategoryID string    `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EffectiveCategoryID returns the todo's category, falling back to the
// default category when none is set.
func (t Todo) EffectiveCategoryID() string {
	return EffectiveCategoryID(t.CategoryID)
}

// EffectiveCategoryID maps an empty category id to DefaultCategoryID.
func EffectiveCategoryID(id string) string {
	if id == "" {
		return DefaultCategoryID
	}
	return id
}

// IsDefaultCategory reports whether id refers to the default category.
func IsDefaultCategory(id string) bool {
	return id == "" || id == DefaultCategoryID
}
