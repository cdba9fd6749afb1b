package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/yfantasy/models"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent chunk evaluations
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the minimum chunk size; smaller inputs run sequentially
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator splits large player lists into chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the players matching filter, preserving input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, players []*models.Player) ([]*models.Player, error) {
	if len(players) == 0 {
		return []*models.Player{}, nil
	}
	if len(players) < e.batchSize || !filter.IsThreadSafe() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return matchAll(filter, players), nil
	}

	chunkSize := max(len(players)/e.workerCount, e.batchSize)
	chunks := make([][]*models.Player, 0, len(players)/chunkSize+1)
	for i := 0; i < len(players); i += chunkSize {
		chunks = append(chunks, players[i:min(i+chunkSize, len(players))])
	}

	results := make([][]*models.Player, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = matchAll(filter, chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]*models.Player, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

func matchAll(filter Filter, players []*models.Player) []*models.Player {
	matches := make([]*models.Player, 0, len(players)/4)
	for _, p := range players {
		if filter.Evaluate(p) {
			matches = append(matches, p)
		}
	}
	return matches
}
