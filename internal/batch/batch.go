// Package batch decompiles every function in a module concurrently. The
// worker shape is adapted from internal/concurrency/concurrency.go's
// WorkerPool: many functions feed one bounded pool of runners and their
// results are collected back into a single slice. Where WorkerPool hands
// out hand-rolled channels and a sync.WaitGroup, batch uses
// golang.org/x/sync/errgroup to bound concurrency and to stop starting jobs
// once the context is cancelled. A function whose decompile fails does not
// stop the others: its error is recorded in its own Result. Each job
// carries a google/uuid correlation id, returned in its Result.
package batch

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gs2dc/internal/ast"
	"gs2dc/internal/decompiler"
	"gs2dc/internal/function"
	"gs2dc/internal/structural"
)

// Job is one function queued for decompilation.
type Job struct {
	ID uuid.UUID
	Fn *function.Function
}

// Result is one function's outcome. Err is non-nil if decompilation of
// this specific function failed; AST is nil in that case.
type Result struct {
	ID           uuid.UUID
	FunctionName string
	AST          *ast.Function
	Err          error
}

// Run decompiles every function in fns concurrently, bounded by limit
// simultaneous jobs (a limit <= 0 means unbounded, matching
// errgroup.SetLimit's own convention). It returns one Result per input
// function, sorted by function name for deterministic output, and a
// non-nil error only if the context was cancelled; a function's own
// decompile error is reported in its Result.Err instead.
func Run(ctx context.Context, fns map[string]*function.Function, opts structural.Options, limit int) ([]Result, error) {
	jobs := make([]Job, 0, len(fns))
	for _, fn := range fns {
		jobs = append(jobs, Job{ID: uuid.New(), Fn: fn})
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make([]Result, len(jobs))
	var mu sync.Mutex

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fnAST, err := decompiler.DecompileFunction(job.Fn, opts)
			mu.Lock()
			results[i] = Result{ID: job.ID, FunctionName: job.Fn.ID.Name, AST: fnAST, Err: err}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].FunctionName < results[b].FunctionName })
	return results, nil
}
