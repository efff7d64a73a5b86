package solver

import (
	"sync"

	"github.com/demi-w/srsdfa/symset"
)

// workItem is one signature-bit computation: "is representative string s
// reachable into the goal language", tagged with its position in the
// requesting batch.
type workItem struct {
	index int
	s     []symset.Symbol
}

// workResult is a work item's answer, still tagged by index so the main
// loop can reassemble results regardless of completion order (spec §5:
// "Ordering guarantees").
type workResult struct {
	index  int
	accept bool
}

// pool is a fixed-size worker pool: N long-lived goroutines reading
// (string, index) work items from a shared channel and publishing
// (answer, index) results. This is the Go-idiomatic rendering of spec §5's
// worker-thread contract — closing the work channel is the termination
// sentinel every worker observes, replacing the source system's
// distinguished terminal input value.
type pool struct {
	work    chan workItem
	results chan workResult
	wg      sync.WaitGroup
}

// newPool starts n workers, each applying compute to every item it reads.
// compute must be safe to call concurrently from all n workers (the
// reachability oracle backing it must therefore hold no mutable state —
// see oracle.BatchOracle).
func newPool(n int, compute func([]symset.Symbol) bool) *pool {
	p := &pool{
		work:    make(chan workItem, n*4),
		results: make(chan workResult, n*4),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker(compute)
	}
	return p
}

func (p *pool) worker(compute func([]symset.Symbol) bool) {
	defer p.wg.Done()
	for item := range p.work {
		p.results <- workResult{index: item.index, accept: compute(item.s)}
	}
}

// computeBatch dispatches one work item per element of reps and blocks
// until every result has been collected, returning answers in input order.
// The happens-before barrier spec §5 requires between outer iterations
// falls out naturally: computeBatch does not return until every result for
// this batch has been drained.
func (p *pool) computeBatch(reps [][]symset.Symbol) []bool {
	out := make([]bool, len(reps))
	go func() {
		for i, s := range reps {
			p.work <- workItem{index: i, s: s}
		}
	}()
	for range reps {
		r := <-p.results
		out[r.index] = r.accept
	}
	return out
}

// close sends the termination sentinel (closing the work channel) and
// waits for every worker to exit.
func (p *pool) close() {
	close(p.work)
	p.wg.Wait()
}
