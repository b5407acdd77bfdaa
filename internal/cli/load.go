package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/fixture"
)

// LoadResult reports a finished catalog load.
type LoadResult struct {
	DB     string   `json:"db"`
	Files  []string `json:"files"`
	Loaded int      `json:"loaded"`
	Total  int      `json:"total"`
}

// RenderText prints a one-line summary.
func (r LoadResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "✓ Loaded %d card(s) from %d file(s) into %s (%d total)\n", r.Loaded, len(r.Files), r.DB, r.Total)
	return nil
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <catalog>...",
		Short: "Load card catalogs into the database",
		Long: `Load YAML (.yaml, .yml) or CUE (.cue) card catalogs into the database,
creating it if needed. All files are written in one transaction; cards
whose id already exists are replaced.

Examples:
  cardsearch load --db cards.db catalog.yaml
  cardsearch load --db cards.db core.cue extras.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), rootOpts, args, cmd)
		},
	}
}

func runLoad(ctx context.Context, opts *RootOptions, files []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, nil)
	}
	defer st.Close()

	for _, f := range files {
		formatter.VerboseLog("Reading catalog: %s", f)
	}

	loaded, err := fixture.Load(ctx, st, files...)
	if err != nil {
		var loadErr *fixture.LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitFailure, ErrCodeCatalog, err, map[string]string{"file": loadErr.File})
		}
		return formatter.Fail(ExitFailure, ErrCodeStore, err, nil)
	}

	total, err := st.CountCards(ctx)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStore, err, nil)
	}
	opts.logger().Info("catalogs loaded", "db", opts.dbPath(), "files", len(files), "cards", loaded)

	return formatter.Success(LoadResult{
		DB:     opts.dbPath(),
		Files:  files,
		Loaded: loaded,
		Total:  total,
	})
}
