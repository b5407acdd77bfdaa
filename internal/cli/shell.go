package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/engine"
	"github.com/roach88/cardsearch/internal/metrics"
	"github.com/roach88/cardsearch/internal/parser"
	"github.com/roach88/cardsearch/internal/querysql"
	"github.com/roach88/cardsearch/internal/search"
	"github.com/roach88/cardsearch/internal/store"
)

const shellPrompt = "cardsearch> "

// shellCommands lists the colon commands for completion and :help.
var shellCommands = []string{":help", ":next", ":sql", ":parse", ":stats", ":quit"}

// LineReader reads shell input. Implemented by *liner.State.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Shell is an interactive search session over one store.
type Shell struct {
	engine   *engine.Engine
	store    *store.Store
	out      io.Writer
	registry prometheus.Gatherer
	limit    int

	// Last search, for :next.
	query  string
	cursor int
	more   bool
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive search shell",
		Long: `Start an interactive shell. Each line is run as a search and the
matching card names are printed. Lines starting with ':' are commands:

  :next          next page of the last search
  :sql <query>   show the compiled SQL
  :parse <query> show the canonical search
  :stats         show engine counters
  :quit          leave (Ctrl-D also works)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), rootOpts, limit, cmd)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "results per page")

	return cmd
}

func runShell(ctx context.Context, opts *RootOptions, limit int, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	st, err := opts.openExistingStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, nil)
	}
	defer st.Close()

	eng, err := opts.newEngine(st)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeShellCommand)

	sh := NewShell(eng, st, cmd.OutOrStdout(), limit)
	if opts.Registry != nil {
		sh.registry = opts.Registry
	}
	return sh.Run(ctx, line)
}

// NewShell creates a shell printing to out with the given page size.
func NewShell(eng *engine.Engine, st *store.Store, out io.Writer, limit int) *Shell {
	if limit <= 0 {
		limit = eng.PageSize()
	}
	return &Shell{engine: eng, store: st, out: out, limit: limit}
}

// Run reads lines until EOF, :quit or an aborted prompt.
func (s *Shell) Run(ctx context.Context, in LineReader) error {
	for {
		text, err := in.Prompt(shellPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		in.AppendHistory(text)

		if quit := s.Handle(ctx, text); quit {
			return nil
		}
	}
}

// Handle runs one input line and reports whether the shell should exit.
// Errors are printed, never returned, so a bad search keeps the session.
func (s *Shell) Handle(ctx context.Context, text string) bool {
	if !strings.HasPrefix(text, ":") {
		s.search(ctx, text, 0)
		return false
	}

	command, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch command {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintf(s.out, "commands: %s\n", strings.Join(shellCommands, " "))
	case ":next":
		if !s.more {
			fmt.Fprintln(s.out, "no more results")
			return false
		}
		s.search(ctx, s.query, s.cursor)
	case ":sql":
		s.showSQL(arg)
	case ":parse":
		s.showParse(arg)
	case ":stats":
		s.showStats()
	default:
		fmt.Fprintf(s.out, "unknown command %s (try :help)\n", command)
	}
	return false
}

func (s *Shell) search(ctx context.Context, query string, cursor int) {
	result, err := searchPage(ctx, s.engine, s.store, query, cursor, s.limit, true)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	s.query = query
	s.cursor = result.NextCursor
	s.more = result.HasMore

	if result.Lenient {
		fmt.Fprintln(s.out, "(search did not parse; showing all cards)")
	}
	for i, c := range result.Cards {
		fmt.Fprintf(s.out, "%4d  %s\n", cursor+i+1, c.Name)
	}
	switch {
	case len(result.Cards) == 0:
		fmt.Fprintln(s.out, "no cards found")
	case result.HasMore:
		fmt.Fprintln(s.out, "(:next for more)")
	}
}

func (s *Shell) showSQL(query string) {
	compiled, err := s.engine.Compile(query)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, store.FetchIDsQuery(compiled))
	if len(compiled.Args()) > 0 {
		fmt.Fprintf(s.out, "params: %s\n", formatParams(compiled))
	}
}

func (s *Shell) showParse(query string) {
	node, err := parser.Parse(query)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, search.Format(node))
}

func (s *Shell) showStats() {
	if s.registry == nil {
		fmt.Fprintln(s.out, "metrics are not enabled")
		return
	}
	samples, err := metrics.Summarize(s.registry)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "compiled searches cached: %d\n", s.engine.CacheLen())
	for _, sample := range samples {
		fmt.Fprintln(s.out, sample)
	}
}

func formatParams(compiled querysql.SQL) string {
	args := compiled.Args()
	parts := make([]string, len(args))
	for i, p := range args {
		parts[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(parts, ", ")
}

func completeShellCommand(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	var out []string
	for _, c := range shellCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}
