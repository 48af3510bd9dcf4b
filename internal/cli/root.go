// Package cli implements the todo command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jaekwang-park/todo-app/internal/client"
	"github.com/jaekwang-park/todo-app/internal/config"
	"github.com/jaekwang-park/todo-app/internal/store"
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	v      *viper.Viper
	cfg    config.ClientConfig
	logger *slog.Logger
	store  *store.Store
}

// NewRootCommand builds the todo command tree. Each call returns an
// independent tree with its own configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "todo",
		Short: "Manage todos and lists on a todo API server",
		Long: `todo talks to a todo API server. Lists are called categories;
todos without a category live in the default "Reminders" list.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("api-url", config.DefaultAPIURL, "base URL of the todo API (env TODO_API_URL)")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP request timeout (env TODO_TIMEOUT)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error (env TODO_LOG_LEVEL)")
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/todo/todo.yaml)")
	_ = a.v.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = a.v.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyConfig, flags.Lookup("config"))

	root.AddCommand(
		a.lsCommand(),
		a.addCommand(),
		a.doneCommand(),
		a.flagCommand(),
		a.editCommand(),
		a.rmCommand(),
		a.categoriesCommand(),
		a.categoryCommand(),
		a.tuiCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	config.SetClientDefaults(a.v)
	if err := config.ReadClientConfigFile(a.v); err != nil {
		return err
	}

	cfg, err := config.LoadClient(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	a.logger.Debug("client configured", "api_url", cfg.APIURL, "timeout", cfg.Timeout)

	api := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
	a.store = store.New(api, store.WithLogger(a.logger))
	return nil
}

// newLogger returns a slog.Logger backed by charmbracelet/log.
func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "todo",
	})
	return slog.New(handler)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func writeLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
