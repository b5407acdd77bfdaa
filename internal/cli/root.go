package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/engine"
	"github.com/roach88/cardsearch/internal/metrics"
	"github.com/roach88/cardsearch/internal/store"
)

// RootOptions holds global flags for all commands and the configuration
// resolved from them before any subcommand runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Set by the root command's PersistentPreRunE.
	Config Config
	Logger *slog.Logger

	// Registry collects engine metrics for commands that report them.
	Registry *prometheus.Registry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cardsearch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cardsearch",
		Short: "Search a local card database with Scryfall-style queries",
		Long: `cardsearch parses Scryfall-style search strings, compiles them to SQL
and runs them against a local SQLite card database.

Configuration is read from flags, CARDSEARCH_* environment variables and
an optional config file (--config), in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (yaml, json or toml)")
	pf.String("db", "cards.db", "path to the SQLite card database")
	pf.Int("page-size", engine.DefaultPageSize, "results per page when --limit is 0")
	pf.Int("cache-size", engine.DefaultCacheSize, "compiled searches kept in memory")
	pf.Bool("lenient", false, "run searches that do not parse without a filter instead of failing")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("log-format", "text", "log format (text|json)")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))

	return cmd
}

// setup validates global flags, resolves the configuration and builds the
// logger. Logs go to stderr so JSON output on stdout stays parseable.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := LoadConfig(o.ConfigFile, cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "configuration", err)
	}
	logger, err := NewLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return WrapExitError(ExitCommandError, "configuration", err)
	}

	o.Config = cfg
	o.Logger = logger
	o.Registry = prometheus.NewRegistry()
	return nil
}

// formatter returns an OutputFormatter bound to cmd's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// logger returns the configured logger, or a discarding one when a
// subcommand runs without the root command (as in tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// openStore opens the configured database.
func (o *RootOptions) openStore() (*store.Store, error) {
	return store.Open(o.dbPath())
}

func (o *RootOptions) dbPath() string {
	if o.Config.DB == "" {
		return "cards.db"
	}
	return o.Config.DB
}

// newEngine builds a search engine over st from the resolved config.
func (o *RootOptions) newEngine(st *store.Store) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithLogger(o.logger()),
		engine.WithLenient(o.Config.Lenient),
	}
	if o.Config.PageSize > 0 {
		opts = append(opts, engine.WithPageSize(o.Config.PageSize))
	}
	if o.Config.CacheSize > 0 {
		opts = append(opts, engine.WithCacheSize(o.Config.CacheSize))
	}
	if o.Registry != nil {
		opts = append(opts, engine.WithMetrics(metrics.New(o.Registry)))
	}
	return engine.New(st, opts...)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
