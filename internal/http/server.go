package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/todo-app/internal/http/handler"
	"github.com/jaekwang-park/todo-app/internal/middleware"
	"github.com/jaekwang-park/todo-app/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer serves the todo and category API on port. db backs the health
// check and may be nil.
func NewServer(port string, logger *slog.Logger, todoSvc *service.TodoService, categorySvc *service.CategoryService, db handler.Pinger) *Server {
	router := NewRouter(todoSvc, categorySvc, db)

	// Apply middleware chain: recovery -> logging -> router
	chain := middleware.Recovery(logger)(middleware.Logging(logger)(router))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           chain,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// Handler returns the fully wrapped handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
