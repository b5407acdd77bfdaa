package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/engine"
	"github.com/roach88/cardsearch/internal/metrics"
	"github.com/roach88/cardsearch/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Cursor int
	Limit  int
	Names  bool // resolve ids to card names
}

// CardSummary is a search hit with its name.
type CardSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResult is one page of search output.
type SearchResult struct {
	Query      string        `json:"query"`
	IDs        []string      `json:"ids"`
	Cards      []CardSummary `json:"cards,omitempty"`
	Cursor     int           `json:"cursor"`
	NextCursor int           `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
	Lenient    bool          `json:"lenient,omitempty"`
}

// RenderText prints one hit per line followed by a paging hint.
func (r SearchResult) RenderText(w io.Writer) error {
	if r.Lenient {
		fmt.Fprintln(w, "# search did not parse; showing all cards")
	}
	if r.Cards != nil {
		for _, c := range r.Cards {
			fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
		}
	} else {
		for _, id := range r.IDs {
			fmt.Fprintln(w, id)
		}
	}
	if r.HasMore {
		fmt.Fprintf(w, "# more results: --cursor %d\n", r.NextCursor)
	}
	return nil
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a search against the card database",
		Long: `Run a search and print one page of matching card ids, ordered by name.

Exit codes:
  0 - Search ran (possibly with no results)
  1 - Syntax error or invalid search
  2 - Command error (database not found, bad paging flags, etc.)

Examples:
  cardsearch search --db cards.db 'c:w kw:flying'
  cardsearch search --db cards.db --names --limit 10 'id<=esper'
  cardsearch search --db cards.db --cursor 60 't:instant'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Cursor, "cursor", 0, "number of matches to skip")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "page size (0 uses --page-size)")
	cmd.Flags().BoolVar(&opts.Names, "names", false, "print card names next to ids")

	return cmd
}

func runSearch(ctx context.Context, opts *SearchOptions, query string, cmd *cobra.Command) error {
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

	result, err := searchPage(ctx, eng, st, query, opts.Cursor, opts.Limit, opts.Names)
	if err != nil {
		return failSearch(formatter, err)
	}

	if opts.Verbose && opts.Registry != nil {
		if samples, err := metrics.Summarize(opts.Registry); err == nil {
			for _, s := range samples {
				formatter.VerboseLog("%s", s)
			}
		}
	}
	return formatter.Success(result)
}

// searchPage runs a search and optionally resolves names.
func searchPage(ctx context.Context, eng *engine.Engine, st *store.Store, query string, cursor, limit int, names bool) (SearchResult, error) {
	page, err := eng.Search(ctx, query, cursor, limit)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Query:      query,
		IDs:        page.IDs,
		Cursor:     page.Cursor,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
		Lenient:    page.Lenient,
	}
	if names {
		result.Cards = make([]CardSummary, 0, len(page.IDs))
		for _, id := range page.IDs {
			card, err := st.GetCard(ctx, id)
			if err != nil {
				return SearchResult{}, &engine.SearchError{Code: engine.ErrCodeFetchFailed, Query: query, Err: err}
			}
			result.Cards = append(result.Cards, CardSummary{ID: id, Name: card.Name})
		}
	}
	return result, nil
}

// failSearch maps engine errors to CLI error codes and exit codes.
func failSearch(formatter *OutputFormatter, err error) error {
	switch engine.ErrorCode(err) {
	case engine.ErrCodeSyntax, engine.ErrCodeInvalidQuery:
		return failQuery(formatter, err)
	case engine.ErrCodeInvalidPage:
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	case engine.ErrCodeFetchFailed:
		return formatter.Fail(ExitFailure, ErrCodeStore, err, nil)
	}
	return formatter.Fail(ExitFailure, ErrCodeGeneric, err, nil)
}

// openExistingStore opens the configured database, refusing to create a
// new empty one.
func (o *RootOptions) openExistingStore() (*store.Store, error) {
	path := o.dbPath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	return store.Open(path)
}
