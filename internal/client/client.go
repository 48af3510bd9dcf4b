// Package client talks to the todo HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jaekwang-park/todo-app/internal/model"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout on a copy of the current
// *http.Client, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:8080/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createTodoRequest struct {
	Title      string `json:"title"`
	CategoryID string `json:"categoryId,omitempty"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a todo. An empty categoryID files it under the default
// category.
func (c *Client) CreateTodo(ctx context.Context, title, categoryID string) (model.Todo, error) {
	if model.IsDefaultCategory(categoryID) {
		categoryID = ""
	}
	var todo model.Todo
	req := createTodoRequest{Title: title, CategoryID: categoryID}
	if err := c.do(ctx, http.MethodPost, "/todos", req, &todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// UpdateTodo sends the full record and returns the server's version of it.
// updateTodoRequest always carries categoryId. The default category is sent
// by its id so that clearing the field moves the todo back to it.
type updateTodoRequest struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Completed  bool      `json:"completed"`
	Flagged    bool      `json:"flagged"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (c *Client) UpdateTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	req := updateTodoRequest{
		ID:         todo.ID,
		Title:      todo.Title,
		Completed:  todo.Completed,
		Flagged:    todo.Flagged,
		CategoryID: todo.CategoryID,
		CreatedAt:  todo.CreatedAt,
	}
	if model.IsDefaultCategory(req.CategoryID) {
		req.CategoryID = model.DefaultCategoryID
	}

	var updated model.Todo
	if err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(todo.ID), req, &updated); err != nil {
		return model.Todo{}, err
	}
	return updated, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", createCategoryRequest{Name: name}, &category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

// do performs one JSON round trip. Every failure is returned as a
// *RequestError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	fail := func(status int, msg string, err error) error {
		return &RequestError{Method: method, Path: path, StatusCode: status, Message: msg, Err: err}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, errorMessage(resp.Body), nil)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorMessage(r io.Reader) string {
	var env errorEnvelope
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&env); err != nil {
		return ""
	}
	return env.Error.Message
}
