package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ErrNotRun marks a RunAll failure that left no scenario run.
var ErrNotRun = errors.New("scenarios not run")

// RunAll runs scenarios concurrently on a pool of at most workers
// goroutines. Results are returned in input order. A scenario that could
// not run gets a failed result carrying the error, and the error also
// contributes to the joined error. When nothing runs at all, results are
// nil and the error wraps ErrNotRun.
func RunAll(ctx context.Context, scenarios []*Scenario, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = 1
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRun, err)
	}

	results := make([]*Result, len(scenarios))
	errs := make([]error, len(scenarios))

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("%w: scenario pool: %w", ErrNotRun, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, scenario := range scenarios {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("scenario %s: panic: %v", scenario.Name, r)
				}
			}()
			results[i], errs[i] = Run(ctx, scenario)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("scenario %s: %w", scenario.Name, submitErr)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			results[i] = NewResult(scenarios[i].Name)
			results[i].AddError(err.Error())
		}
	}
	return results, errors.Join(errs...)
}
