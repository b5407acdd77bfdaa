package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roach88/cardsearch/internal/metrics"
	"github.com/roach88/cardsearch/internal/parser"
	"github.com/roach88/cardsearch/internal/querysql"
)

const (
	// DefaultPageSize is the limit used when a search asks for limit 0.
	DefaultPageSize = 60

	// DefaultCacheSize is the number of compiled searches kept in memory.
	DefaultCacheSize = 256
)

// Fetcher runs a compiled search against the card store.
// Implemented by *store.Store.
type Fetcher interface {
	FetchIDs(ctx context.Context, q querysql.SQL, cursor, limit int) ([]string, error)
}

// Engine parses, compiles and runs searches.
type Engine struct {
	fetcher  Fetcher
	compiler *querysql.SQLCompiler
	cache    *lru.Cache[string, querysql.SQL]
	seq      *Sequence
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	pageSize  int
	cacheSize int
	lenient   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: records are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics records search outcomes and latencies into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock replaces time.Now for latency measurements.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPageSize sets the limit used when a search passes limit 0.
func WithPageSize(n int) Option {
	return func(e *Engine) { e.pageSize = n }
}

// WithCacheSize sets the number of compiled searches to keep.
func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cacheSize = n }
}

// WithLenient makes syntax errors fall back to an unfiltered search
// instead of failing.
func WithLenient(lenient bool) Option {
	return func(e *Engine) { e.lenient = lenient }
}

// WithSequence sets the source of search numbers.
func WithSequence(seq *Sequence) Option {
	return func(e *Engine) { e.seq = seq }
}

// New creates an Engine that fetches pages from f.
func New(f Fetcher, opts ...Option) (*Engine, error) {
	if f == nil {
		return nil, fmt.Errorf("engine: nil fetcher")
	}

	e := &Engine{
		fetcher:   f,
		compiler:  querysql.NewSQLCompiler(),
		seq:       &Sequence{},
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		pageSize:  DefaultPageSize,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.pageSize <= 0 {
		return nil, fmt.Errorf("engine: page size must be positive, got %d", e.pageSize)
	}
	cache, err := lru.New[string, querysql.SQL](e.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("engine: compile cache: %w", err)
	}
	e.cache = cache
	return e, nil
}

// Page is one page of search results.
type Page struct {
	// Seq is the search number assigned by the engine.
	Seq int64

	// Query is the search string as given.
	Query string

	// IDs are the matching card ids in page order.
	IDs []string

	// Cursor is the offset this page starts at.
	Cursor int

	// NextCursor is the offset of the following page.
	NextCursor int

	// HasMore is true if at least one more match exists past this page.
	HasMore bool

	// Lenient is true if the search did not parse and ran unfiltered.
	Lenient bool
}

// Compile parses q and compiles it to SQL, consulting the cache first.
// Errors are returned unwrapped (*parser.SyntaxError, *search.ContractError,
// *color.InvalidCombinationError) and are never cached.
func (e *Engine) Compile(q string) (querysql.SQL, error) {
	if compiled, ok := e.cache.Get(q); ok {
		e.recordCache("hit")
		return compiled, nil
	}
	e.recordCache("miss")

	start := e.now()
	node, err := parser.Parse(q)
	if err != nil {
		return querysql.SQL{}, err
	}
	compiled, err := e.compiler.Compile(node)
	if err != nil {
		return querysql.SQL{}, err
	}
	if e.metrics != nil {
		e.metrics.CompileDuration.Observe(e.now().Sub(start).Seconds())
	}

	e.cache.Add(q, compiled)
	return compiled, nil
}

// Search runs q and returns the page starting at cursor with at most limit
// ids. A limit of 0 uses the engine's page size.
func (e *Engine) Search(ctx context.Context, q string, cursor, limit int) (Page, error) {
	seq := e.seq.Next()
	logger := e.logger.With("seq", seq)

	// The fetch asks for limit+1 rows.
	if cursor < 0 || limit < 0 || limit == math.MaxInt {
		e.recordOutcome(metrics.OutcomeError)
		return Page{}, &SearchError{
			Code:  ErrCodeInvalidPage,
			Query: q,
			Err:   fmt.Errorf("cursor %d, limit %d", cursor, limit),
		}
	}
	if limit == 0 {
		limit = e.pageSize
	}

	page := Page{Seq: seq, Query: q, Cursor: cursor}

	compiled, err := e.Compile(q)
	if err != nil {
		if !e.lenient || !parser.IsSyntaxError(err) {
			se := classifyCompileError(q, err)
			if se.Code == ErrCodeSyntax {
				e.recordOutcome(metrics.OutcomeSyntaxError)
			} else {
				e.recordOutcome(metrics.OutcomeError)
			}
			logger.Debug("search rejected", "query", q, "code", se.Code, "error", err)
			return Page{}, se
		}
		logger.Warn("search does not parse, running unfiltered", "query", q, "error", err)
		compiled = querysql.SQL{}
		page.Lenient = true
	}

	// One extra row tells whether another page exists.
	start := e.now()
	ids, err := e.fetcher.FetchIDs(ctx, compiled, cursor, limit+1)
	if err != nil {
		e.recordOutcome(metrics.OutcomeError)
		logger.Error("search fetch failed", "query", q, "error", err)
		return Page{}, &SearchError{Code: ErrCodeFetchFailed, Query: q, Err: err}
	}
	elapsed := e.now().Sub(start)

	if len(ids) > limit {
		ids = ids[:limit]
		page.HasMore = true
	}
	page.IDs = ids
	page.NextCursor = cursor + len(ids)

	if e.metrics != nil {
		e.metrics.FetchDuration.Observe(elapsed.Seconds())
		e.metrics.PageSize.Observe(float64(len(ids)))
	}
	if page.Lenient {
		e.recordOutcome(metrics.OutcomeLenient)
	} else {
		e.recordOutcome(metrics.OutcomeOK)
	}

	logger.Debug("search",
		"query", q,
		"cursor", cursor,
		"limit", limit,
		"results", len(ids),
		"has_more", page.HasMore,
		"elapsed", elapsed,
	)
	return page, nil
}

// CacheLen returns the number of compiled searches currently cached.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}

// PageSize returns the limit used when a search passes limit 0.
func (e *Engine) PageSize() int {
	return e.pageSize
}

func (e *Engine) recordOutcome(outcome string) {
	if e.metrics != nil {
		e.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	}
}

func (e *Engine) recordCache(result string) {
	if e.metrics != nil {
		e.metrics.CompileCache.WithLabelValues(result).Inc()
	}
}
