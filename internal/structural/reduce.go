package structural

import (
	"gs2dc/internal/gs2err"
	"gs2dc/internal/region"
)

// reducer attempts to fold one recognizable shape rooted at id. It reports
// whether it made a change; a false return with a nil error means "shape
// not present here, try the next reducer."
type reducer func(regions *region.Set, id region.ID) (bool, error)

// priority order: a straight-line run is always worth collapsing first (it
// only ever shrinks the graph for later reducers to look at), then the
// acyclic-conditional shapes, then the two cyclic shapes, then the
// tail-merge shapes that close off a function's return paths.
var reducers = []reducer{
	linearReduce,
	acyclicConditionalReduce,
	cyclicDoWhileReduce,
	cyclicWhileReduce,
	tailMergeReduce,
}

// Reduce runs the fixed-point loop: each outer iteration walks the region
// graph in DFS post-order from the entry region, trying every reducer at
// every region, until either one region remains, no reducer makes progress
// in a full pass, or opts.MaxIterations is exceeded.
func Reduce(regions *region.Set, opts Options) error {
	if opts.MaxIterations <= 0 {
		opts = DefaultOptions()
	}

	iterations := 0
	for regions.Len() > 1 {
		if iterations >= opts.MaxIterations {
			return gs2err.NewStructureAnalysisError(gs2err.SubMaxIterationsReached, "structural analysis did not converge")
		}

		entry, err := regions.GetEntryRegion()
		if err != nil {
			return err
		}

		order := regions.DFSPostOrder(entry)
		progress := false
		for _, id := range order {
			if _, err := regions.GetRegion(id); err != nil {
				// Already folded away by an earlier reducer this pass.
				continue
			}
			for _, reduce := range reducers {
				changed, err := reduce(regions, id)
				if err != nil {
					return err
				}
				if changed {
					progress = true
					break
				}
			}
		}

		if !progress {
			return gs2err.NewStructureAnalysisError(gs2err.SubOther, "no reducer made progress")
		}
		iterations++
	}

	return nil
}
