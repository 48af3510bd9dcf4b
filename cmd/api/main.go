package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaekwang-park/todo-app/internal/config"
	todohttp "github.com/jaekwang-park/todo-app/internal/http"
	"github.com/jaekwang-park/todo-app/internal/repository"
	"github.com/jaekwang-park/todo-app/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"db_driver", cfg.DB.Driver,
		"log_level", cfg.LogLevel,
	)

	// Database connection
	db, err := repository.NewDB(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	if err := repository.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		return err
	}
	logger.Info("database schema ready")

	// Repositories
	todoRepo := repository.NewSQLTodo(db, cfg.DB.Driver)
	categoryRepo := repository.NewSQLCategory(db, cfg.DB.Driver)

	// Services
	todoSvc := service.NewTodoService(todoRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo, todoRepo)

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, todoSvc, categorySvc, db)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
