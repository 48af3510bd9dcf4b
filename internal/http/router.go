package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaekwang-park/todo-app/internal/http/handler"
	"github.com/jaekwang-park/todo-app/internal/service"
)

func NewRouter(todoSvc *service.TodoService, categorySvc *service.CategoryService, db handler.Pinger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = handler.NotFound()
	r.MethodNotAllowedHandler = handler.MethodNotAllowed()

	// Health check - intentionally outside /api/v1 for load balancer probes
	r.Handle("/health", handler.NewHealthHandler(db))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.NotFoundHandler = handler.NotFound()
	api.MethodNotAllowedHandler = handler.MethodNotAllowed()

	handler.NewTodoHandler(todoSvc).Register(api)
	handler.NewCategoryHandler(categorySvc).Register(api)

	return r
}
