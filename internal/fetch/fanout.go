package fetch

import (
	"context"
	"sync"
)

// Map runs fn over items with at most limit goroutines in flight and returns
// the successful results. The cap is backpressure against upstream rate
// limiting, not a correctness requirement; result order is unspecified
// because the aggregator imposes the final ordering. fn returning ok=false
// drops that item from the results.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, bool)) []R {
	if limit <= 0 {
		limit = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]R, 0, len(items))
		sem     = make(chan struct{}, limit)
	)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(item T) {
			defer wg.Done()
			defer func() { <-sem }()
			result, ok := fn(ctx, item)
			if !ok {
				return
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(item)
	}

	wg.Wait()
	return results
}
