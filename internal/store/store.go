// Package store holds the client-side todo state. Every mutation goes through
// the API and the store applies the server's response; consumers observe
// changes through Subscribe.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/jaekwang-park/todo-app/internal/model"
)

var (
	ErrBlankTitle  = errors.New("title must not be blank")
	ErrBlankName   = errors.New("category name must not be blank")
	ErrUnknownTodo = errors.New("unknown todo")
)

// API is the subset of the HTTP API the store depends on.
type API interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, title, categoryID string) (model.Todo, error)
	UpdateTodo(ctx context.Context, todo model.Todo) (model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
}

type subscription struct {
	id uint64
	fn func(State)
}

type Store struct {
	api    API
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	loading int // in-flight fetches; IsLoading mirrors loading > 0
	subs    []subscription
	nextSub uint64
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store backed by api. The default category is always
// present and selected.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:    api,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state: State{
			Todos:             []model.Todo{},
			Categories:        []model.Category{model.DefaultCategory(time.Time{})},
			CurrentCategoryID: model.DefaultCategoryID,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Visible returns the todos currently shown to the user.
func (s *Store) Visible() []model.Todo {
	return s.Snapshot().Visible()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Handlers run on the goroutine that applied the change, outside the store's
// lock. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// update applies fn atomically and then notifies subscribers.
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		s.safeCall(sub.fn, snapshot)
	}
}

func (s *Store) safeCall(fn func(State), state State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store subscriber panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn(state)
}

// FetchTodos replaces the todo list with the server's. The loading flag is
// set for the duration of the request and cleared whatever the outcome.
func (s *Store) FetchTodos(ctx context.Context) error {
	s.update(func(st *State) {
		s.loading++
		st.IsLoading = true
	})
	defer s.update(func(st *State) {
		s.loading--
		st.IsLoading = s.loading > 0
	})

	todos, err := s.api.ListTodos(ctx)
	if err != nil {
		s.logger.Warn("fetch todos failed", "error", err)
		return fmt.Errorf("fetch todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	s.update(func(st *State) {
		st.Todos = todos
	})
	return nil
}

// FetchCategories replaces the category list with the default category
// followed by the server's categories.
func (s *Store) FetchCategories(ctx context.Context) error {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.logger.Warn("fetch categories failed", "error", err)
		return fmt.Errorf("fetch categories: %w", err)
	}

	s.update(func(st *State) {
		def := model.DefaultCategory(time.Time{})
		for _, c := range st.Categories {
			if c.ID == model.DefaultCategoryID {
				def = c
				break
			}
		}
		next := make([]model.Category, 0, len(categories)+1)
		next = append(next, def)
		for _, c := range categories {
			if model.IsDefaultCategory(c.ID) {
				continue
			}
			c.Todos = nil
			next = append(next, c)
		}
		st.Categories = next
	})
	return nil
}

// Refresh fetches categories and todos. Both are attempted even if the
// first fails.
func (s *Store) Refresh(ctx context.Context) error {
	return errors.Join(s.FetchCategories(ctx), s.FetchTodos(ctx))
}

// AddTodo creates a todo in the current category and prepends the server's
// record. A blank title is rejected without a request.
func (s *Store) AddTodo(ctx context.Context, title string) (model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Todo{}, ErrBlankTitle
	}

	s.mu.Lock()
	categoryID := s.state.CurrentCategoryID
	s.mu.Unlock()
	if model.IsDefaultCategory(categoryID) {
		categoryID = ""
	}

	created, err := s.api.CreateTodo(ctx, title, categoryID)
	if err != nil {
		s.logger.Warn("add todo failed", "title", title, "error", err)
		return model.Todo{}, fmt.Errorf("add todo: %w", err)
	}

	s.update(func(st *State) {
		st.Todos = append([]model.Todo{created}, st.Todos...)
	})
	return created, nil
}

// AddCategory creates a category and appends the server's record. A blank
// name is rejected without a request.
func (s *Store) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrBlankName
	}

	created, err := s.api.CreateCategory(ctx, name)
	if err != nil {
		s.logger.Warn("add category failed", "name", name, "error", err)
		return model.Category{}, fmt.Errorf("add category: %w", err)
	}

	created.Todos = nil
	s.update(func(st *State) {
		st.Categories = append(st.Categories, created)
	})
	return created, nil
}

// UpdateTodo sends the full record and replaces the local copy with the one
// the server returns. Concurrent updates of the same todo apply in response
// order.
func (s *Store) UpdateTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	updated, err := s.api.UpdateTodo(ctx, todo)
	if err != nil {
		s.logger.Warn("update todo failed", "id", todo.ID, "error", err)
		return model.Todo{}, fmt.Errorf("update todo %s: %w", todo.ID, err)
	}

	if updated.ID == "" {
		updated.ID = todo.ID
	}
	s.update(func(st *State) {
		next := make([]model.Todo, len(st.Todos))
		copy(next, st.Todos)
		for i := range next {
			if next[i].ID == todo.ID {
				next[i] = updated
			}
		}
		st.Todos = next
	})
	return updated, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	if err := s.api.DeleteTodo(ctx, id); err != nil {
		s.logger.Warn("delete todo failed", "id", id, "error", err)
		return fmt.Errorf("delete todo %s: %w", id, err)
	}

	s.update(func(st *State) {
		next := make([]model.Todo, 0, len(st.Todos))
		for _, t := range st.Todos {
			if t.ID != id {
				next = append(next, t)
			}
		}
		st.Todos = next
	})
	return nil
}

// ToggleCompleted flips the completed flag of a known todo through
// UpdateTodo.
func (s *Store) ToggleCompleted(ctx context.Context, id string) (model.Todo, error) {
	return s.toggle(ctx, id, func(t *model.Todo) { t.Completed = !t.Completed })
}

// ToggleFlagged flips the flagged marker of a known todo through UpdateTodo.
func (s *Store) ToggleFlagged(ctx context.Context, id string) (model.Todo, error) {
	return s.toggle(ctx, id, func(t *model.Todo) { t.Flagged = !t.Flagged })
}

func (s *Store) toggle(ctx context.Context, id string, flip func(*model.Todo)) (model.Todo, error) {
	s.mu.Lock()
	todo, ok := s.state.Todo(id)
	s.mu.Unlock()
	if !ok {
		return model.Todo{}, fmt.Errorf("%w: %s", ErrUnknownTodo, id)
	}

	flip(&todo)
	return s.UpdateTodo(ctx, todo)
}

func (s *Store) SetFilterFlagged(flag bool) {
	s.update(func(st *State) {
		st.FilterFlagged = flag
	})
}

// SetCurrentCategoryID selects a category. An empty id selects the default
// category.
func (s *Store) SetCurrentCategoryID(id string) {
	s.update(func(st *State) {
		st.CurrentCategoryID = model.EffectiveCategoryID(id)
	})
}
