package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/parser"
	"github.com/roach88/cardsearch/internal/querysql"
	"github.com/roach88/cardsearch/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Full bool // also print the complete page query
}

// CompileResult holds a compiled search.
type CompileResult struct {
	Query  string   `json:"query"`
	Where  string   `json:"where"`
	Joins  []string `json:"joins"`
	Params []any    `json:"params"`
	SQL    string   `json:"sql,omitempty"`
}

// RenderText prints the fragment one section per line group.
func (r CompileResult) RenderText(w io.Writer) error {
	where := r.Where
	if where == "" {
		where = "(none)"
	}
	fmt.Fprintf(w, "where: %s\n", where)
	if len(r.Joins) > 0 {
		fmt.Fprintln(w, "joins:")
		for _, j := range r.Joins {
			fmt.Fprintf(w, "  %s\n", j)
		}
	}
	if len(r.Params) > 0 {
		fmt.Fprintln(w, "params:")
		for _, p := range r.Params {
			fmt.Fprintf(w, "  %q\n", p)
		}
	}
	if r.SQL != "" {
		fmt.Fprintf(w, "sql: %s\n", r.SQL)
	}
	return nil
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <query>",
		Short: "Compile a search string to SQL",
		Long: `Compile a search string to the WHERE predicate, JOIN clauses and bound
parameters that the search command runs. No database is opened.

Examples:
  cardsearch compile 'id<=esper kw:flying'
  cardsearch compile --full 't:goblin OR pow>=toughness'
  cardsearch compile --format json 'o:"draw a card"'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Full, "full", false, "also print the complete page query")

	return cmd
}

func runCompile(opts *CompileOptions, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	node, err := parser.Parse(query)
	if err != nil {
		return failQuery(formatter, err)
	}
	compiled, err := querysql.Compile(node)
	if err != nil {
		return failQuery(formatter, err)
	}

	formatter.VerboseLog("Compiled %q: %d join(s), %d param(s)", query, len(compiled.Joins), len(compiled.Args()))

	result := CompileResult{
		Query:  query,
		Where:  compiled.Where,
		Joins:  compiled.Joins,
		Params: compiled.Args(),
	}
	if result.Joins == nil {
		result.Joins = []string{}
	}
	if result.Params == nil {
		result.Params = []any{}
	}
	if opts.Full {
		result.SQL = store.FetchIDsQuery(compiled)
	}
	return formatter.Success(result)
}
