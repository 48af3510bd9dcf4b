package store

import (
	"time"

	"github.com/jaekwang-park/todo-app/internal/model"
)

// State is one snapshot of the store. Snapshots handed out by the store own
// their slices; changing them has no effect on the store.
type State struct {
	Todos             []model.Todo
	Categories        []model.Category
	CurrentCategoryID string
	FilterFlagged     bool
	IsLoading         bool
}

// Visible returns the todos of the current category, restricted to flagged
// todos when FilterFlagged is set. It is computed on every call.
func (s State) Visible() []model.Todo {
	current := model.EffectiveCategoryID(s.CurrentCategoryID)
	visible := make([]model.Todo, 0, len(s.Todos))
	for _, t := range s.Todos {
		if t.EffectiveCategoryID() != current {
			continue
		}
		if s.FilterFlagged && !t.Flagged {
			continue
		}
		visible = append(visible, t)
	}
	return visible
}

// CurrentCategory returns the selected category, falling back to the default
// category when the selection is not among the known categories.
func (s State) CurrentCategory() model.Category {
	current := model.EffectiveCategoryID(s.CurrentCategoryID)
	for _, c := range s.Categories {
		if c.ID == current {
			return c
		}
	}
	return model.DefaultCategory(time.Time{})
}

// Todo looks up a todo by id.
func (s State) Todo(id string) (model.Todo, bool) {
	for _, t := range s.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

func (s State) clone() State {
	c := s
	c.Todos = append([]model.Todo(nil), s.Todos...)
	c.Categories = make([]model.Category, len(s.Categories))
	for i, cat := range s.Categories {
		cat.Todos = append([]model.Todo(nil), cat.Todos...)
		c.Categories[i] = cat
	}
	return c
}
