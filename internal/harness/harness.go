package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/cardsearch/internal/engine"
	"github.com/roach88/cardsearch/internal/fixture"
	"github.com/roach88/cardsearch/internal/store"
)

// Harness runs the searches of one scenario against a loaded store.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Create fresh in-memory database
//  2. Load catalog files, then inline cards
//  3. Run every search, compiling it first for the trace
//  4. Check each page against its expect clause
//
// The returned error covers setup failures only; search mismatches are
// reported in Result.Errors.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := loadCards(ctx, st, scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	eng, err := engine.New(st, engine.WithLenient(scenario.Lenient))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h := &Harness{
		store:  st,
		engine: eng,
		logger: slog.New(slog.DiscardHandler),
	}

	result := NewResult(scenario.Name)
	for i, step := range scenario.Searches {
		event, err := h.runSearch(ctx, i+1, step)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: search %d: %w", scenario.Name, i+1, err)
		}
		result.AddTrace(event)
		for _, failure := range CheckExpect(step.Expect, event) {
			result.AddError(failure.Error())
		}
	}
	return result, nil
}

func loadCards(ctx context.Context, st *store.Store, scenario *Scenario) error {
	if len(scenario.Catalogs) > 0 {
		if _, err := fixture.Load(ctx, st, scenario.Catalogs...); err != nil {
			return err
		}
	}
	if len(scenario.Cards) == 0 {
		return nil
	}
	inline := fixture.Catalog{Cards: scenario.Cards}
	cards, err := inline.StoreCards()
	if err != nil {
		return fmt.Errorf("inline cards: %w", err)
	}
	return st.InsertCards(ctx, cards)
}

// runSearch runs one step. Search errors become part of the event; only
// failures to read back card names are returned.
func (h *Harness) runSearch(ctx context.Context, index int, step SearchStep) (TraceEvent, error) {
	event := TraceEvent{Step: index, Query: step.Query, Names: []string{}}

	if compiled, err := h.engine.Compile(step.Query); err == nil {
		event.Compiled = true
		event.Where = compiled.Where
		event.Joins = compiled.Joins
		event.Params = compiled.Args()
	}

	limit := step.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	page, err := h.engine.Search(ctx, step.Query, step.Cursor, limit)
	if err != nil {
		event.Error = string(engine.ErrorCode(err))
		if event.Error == "" {
			return event, err
		}
		h.logger.Info("search failed", "step", index, "query", step.Query, "code", event.Error)
		return event, nil
	}

	event.HasMore = page.HasMore
	event.Lenient = page.Lenient
	for _, id := range page.IDs {
		card, err := h.store.GetCard(ctx, id)
		if err != nil {
			return event, err
		}
		event.Names = append(event.Names, card.Name)
	}

	h.logger.Info("search completed",
		"step", index,
		"query", step.Query,
		"results", len(event.Names),
		"has_more", event.HasMore,
	)
	return event, nil
}
