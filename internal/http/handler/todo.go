package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaekwang-park/todo-app/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Register mounts the todo routes on r, which is expected to be the
// /api/v1 subrouter.
// Each path is registered once and dispatches on r.Method, answering 405
// for anything else.
func (h *TodoHandler) Register(r *mux.Router) {
	r.HandleFunc("/todos", h.handleCollection)
	r.HandleFunc("/todos/{id}", h.handleItem)
}

func (h *TodoHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (h *TodoHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetByID(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

type createTodoRequest struct {
	Title      string `json:"title"`
	CategoryID string `json:"categoryId,omitempty"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.svc.Create(r.Context(), service.CreateTodoInput{
		Title:      req.Title,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	todo, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

// updateTodoRequest accepts a full Todo record; id and createdAt are ignored.
type updateTodoRequest struct {
	Title      *string `json:"title,omitempty"`
	Completed  *bool   `json:"completed,omitempty"`
	Flagged    *bool   `json:"flagged,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], service.UpdateTodoInput{
		Title:      req.Title,
		Completed:  req.Completed,
		Flagged:    req.Flagged,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}
