package config_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/jaekwang-park/todo-app/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "DB_PATH", "APP_ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ServerPort", cfg.ServerPort, "8080"},
		{"AppEnv", cfg.AppEnv, "local"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"DB.Driver", cfg.DB.Driver, "postgres"},
		{"DB.Host", cfg.DB.Host, "localhost"},
		{"DB.Port", cfg.DB.Port, "5432"},
		{"DB.User", cfg.DB.User, "todo"},
		{"DB.Password", cfg.DB.Password, "todo"},
		{"DB.Name", cfg.DB.Name, "todo"},
		{"DB.SSLMode", cfg.DB.SSLMode, "disable"},
		{"DB.Path", cfg.DB.Path, "todo.sqlite3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLITE3")
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "admin")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "mydb")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("DB_PATH", "/tmp/todo.db")
	t.Setenv("APP_ENV", "alpha")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ServerPort", cfg.ServerPort, "9090"},
		{"DB.Driver", cfg.DB.Driver, "sqlite3"},
		{"DB.Host", cfg.DB.Host, "db.example.com"},
		{"DB.Port", cfg.DB.Port, "5433"},
		{"DB.User", cfg.DB.User, "admin"},
		{"DB.Password", cfg.DB.Password, "secret"},
		{"DB.Name", cfg.DB.Name, "mydb"},
		{"DB.SSLMode", cfg.DB.SSLMode, "require"},
		{"DB.Path", cfg.DB.Path, "/tmp/todo.db"},
		{"AppEnv", cfg.AppEnv, "alpha"},
		{"LogLevel", cfg.LogLevel, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantSub  string
	}{
		{
			name:     "simple password",
			password: "todo",
			wantSub:  "todo:todo@",
		},
		{
			name:     "password with special chars",
			password: "p@ss/w#rd?",
			wantSub:  "todo:p%40ss%2Fw%23rd%3F@",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_PASSWORD", tt.password)

			cfg := config.Load()
			dsn := cfg.DB.DSN()

			if !strings.Contains(dsn, tt.wantSub) {
				t.Errorf("DSN=%s, want to contain %s", dsn, tt.wantSub)
			}
			if !strings.HasPrefix(dsn, "postgres://") {
				t.Errorf("DSN=%s, want postgres:// prefix", dsn)
			}
			if !strings.Contains(dsn, "sslmode=disable") {
				t.Errorf("DSN=%s, want sslmode=disable", dsn)
			}
		})
	}
}

func TestConfig_DSN_SQLite(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", "local.db")

	dsn := config.Load().DB.DSN()
	if dsn != "file:local.db?_foreign_keys=on" {
		t.Errorf("unexpected sqlite DSN %q", dsn)
	}
}

func TestConfig_ParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Warn", "Warn", slog.LevelWarn},
		{"empty defaults to info", "", slog.LevelInfo},
		{"invalid defaults to info", "verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LOG_LEVEL", tt.value)

			cfg := config.Load()
			got := cfg.ParseLogLevel()

			if got != tt.want {
				t.Errorf("LOG_LEVEL=%q: got %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		env     string
		driver  string
		wantErr string
	}{
		{"valid local postgres", "8080", "local", "postgres", ""},
		{"valid local sqlite", "8080", "local", "sqlite3", ""},
		{"valid alpha", "8080", "alpha", "postgres", ""},
		{"valid beta", "9090", "beta", "postgres", ""},
		{"valid prod", "80", "prod", "postgres", ""},
		{"invalid port", "abc", "local", "postgres", "invalid SERVER_PORT"},
		{"invalid env", "8080", "staging", "postgres", "invalid APP_ENV"},
		{"invalid driver", "8080", "local", "mysql", "invalid DB_DRIVER"},
		{"sqlite in prod", "8080", "prod", "sqlite3", "must not be used in prod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SERVER_PORT", tt.port)
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("DB_DRIVER", tt.driver)

			cfg := config.Load()
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}
