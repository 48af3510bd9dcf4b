package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jaekwang-park/todo-app/internal/client"
	"github.com/jaekwang-park/todo-app/internal/model"
)

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newServer(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL + "/api/v1/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_ListTodos(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/todos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []model.Todo{
			{ID: "t2", Title: "Second", CreatedAt: now.Add(time.Minute)},
			{ID: "t1", Title: "First", CreatedAt: now},
		})
	})

	todos, err := c.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != "t2" || todos[1].ID != "t1" {
		t.Errorf("expected server order, got %+v", todos)
	}
}

func TestClient_CreateTodo(t *testing.T) {
	tests := []struct {
		name       string
		categoryID string
		wantBody   string
	}{
		{"default category omitted", "", `{"title":"Buy milk"}`},
		{"reserved default id omitted", model.DefaultCategoryID, `{"title":"Buy milk"}`},
		{"explicit category", "cat-1", `{"title":"Buy milk","categoryId":"cat-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/v1/todos" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected JSON content type, got %q", ct)
				}
				body, _ := io.ReadAll(r.Body)
				if got := strings.TrimSpace(string(body)); got != tt.wantBody {
					t.Errorf("expected body %s, got %s", tt.wantBody, got)
				}
				writeJSON(w, http.StatusCreated, model.Todo{ID: "t1", Title: "Buy milk", CategoryID: tt.categoryID, CreatedAt: now})
			})

			todo, err := c.CreateTodo(context.Background(), "Buy milk", tt.categoryID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if todo.ID != "t1" {
				t.Errorf("expected server id t1, got %s", todo.ID)
			}
		})
	}
}

func TestClient_UpdateTodo(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/todos/t1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var got model.Todo
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if !got.Flagged || got.Title != "Buy milk " {
			t.Errorf("expected full record in body, got %+v", got)
		}
		got.Title = strings.TrimSpace(got.Title)
		writeJSON(w, http.StatusOK, got)
	})

	updated, err := c.UpdateTodo(context.Background(), model.Todo{ID: "t1", Title: "Buy milk ", Flagged: true, CreatedAt: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Buy milk" {
		t.Errorf("expected server-normalized title, got %q", updated.Title)
	}
}

func TestClient_UpdateTodo_SendsCategoryID(t *testing.T) {
	tests := []struct {
		name       string
		categoryID string
		want       string
	}{
		{name: "empty means default", categoryID: "", want: model.DefaultCategoryID},
		{name: "explicit default", categoryID: model.DefaultCategoryID, want: model.DefaultCategoryID},
		{name: "custom category", categoryID: "c1", want: "c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				writeJSON(w, http.StatusOK, model.Todo{ID: "t1", Title: "Buy milk"})
			})

			_, err := c.UpdateTodo(context.Background(), model.Todo{ID: "t1", Title: "Buy milk", CategoryID: tt.categoryID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := body["categoryId"]
			if !ok {
				t.Fatalf("expected categoryId in body, got %v", body)
			}
			if got != tt.want {
				t.Errorf("expected categoryId %q, got %v", tt.want, got)
			}
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_WithTimeoutLeavesSharedClient(t *testing.T) {
	var calls int
	shared := &http.Client{
		Timeout: time.Minute,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader("[]")),
				Request:    r,
			}, nil
		}),
	}

	c := client.New("http://todo.test/api/v1", client.WithHTTPClient(shared), client.WithTimeout(time.Second))

	if _, err := c.ListCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shared.Timeout != time.Minute {
		t.Errorf("expected shared client timeout to stay 1m, got %v", shared.Timeout)
	}
	if calls != 1 {
		t.Errorf("expected the shared transport to serve the request, got %d calls", calls)
	}
}

func TestClient_DeleteTodo(t *testing.T) {
	var gotPath string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteTodo(context.Background(), "a/b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/v1/todos/a%2Fb" {
		t.Errorf("expected escaped id in path, got %s", gotPath)
	}
}

func TestClient_Categories(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []model.Category{
				{ID: "cat-1", Name: "Work", CreatedAt: now, Todos: []model.Todo{{ID: "t1", Title: "Report"}}},
			})
		case http.MethodPost:
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			writeJSON(w, http.StatusCreated, model.Category{ID: "cat-2", Name: req["name"], CreatedAt: now})
		}
	})

	categories, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || len(categories[0].Todos) != 1 {
		t.Errorf("unexpected categories %+v", categories)
	}

	created, err := c.CreateCategory(context.Background(), "Home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "cat-2" || created.Name != "Home" {
		t.Errorf("unexpected category %+v", created)
	}
}

func TestClient_RequestFailed(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  int
		wantMessage string
	}{
		{
			name: "server error with envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"error": map[string]string{"code": "INTERNAL_ERROR", "message": "internal server error"},
				})
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
		{
			name: "not found without body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "malformed success body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("not json"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, tt.handler)

			_, err := c.ListTodos(context.Background())
			if !errors.Is(err, client.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}

			var reqErr *client.RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected *RequestError, got %T", err)
			}
			if reqErr.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, reqErr.StatusCode)
			}
			if reqErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, reqErr.Message)
			}
			if reqErr.Method != http.MethodGet || reqErr.Path != "/todos" {
				t.Errorf("unexpected request in error: %s %s", reqErr.Method, reqErr.Path)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url, client.WithTimeout(time.Second))
	err := c.DeleteTodo(context.Background(), "t1")
	if !errors.Is(err, client.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}

	var reqErr *client.RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != 0 || reqErr.Err == nil {
		t.Errorf("expected transport error without status, got %+v", reqErr)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Todo{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTodos(ctx)
	if !errors.Is(err, client.ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}
