package recommend

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/service"
)

// BatchOptions configures batch recommendation.
type BatchOptions struct {
	// OnResult, when set, is called once per finished request from the
	// worker that finished it.
	OnResult func(BatchResult)
	Workers  int
}

// DefaultBatchOptions returns sensible defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{Workers: 4}
}

// BatchRequest is one entry of a batch. Requests with detected labels go
// through RecommendFromDetected.
type BatchRequest struct {
	Name string `json:"name,omitempty"`
	model.RecommendationRequest
	Detected []string `json:"detected,omitempty"`
}

// BatchResult is the outcome of one batch entry.
type BatchResult struct {
	Error  error
	Name   string
	Result model.RecommendationResult
	Index  int
}

// RecommendBatch runs requests over a bounded worker pool. Results come back
// in request order. Once ctx is canceled, unstarted requests fail with the
// context error.
func (e *Engine) RecommendBatch(ctx context.Context, requests []BatchRequest, opts BatchOptions) ([]BatchResult, service.BatchStats) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultBatchOptions().Workers
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	workChan := make(chan int, len(requests))
	for i := range requests {
		workChan <- i
	}
	close(workChan)

	results := make([]BatchResult, len(requests))
	var callbackMu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(workerID int) {
			defer wg.Done()
			for i := range workChan {
				result := e.runBatchEntry(ctx, i, requests[i])
				slog.Debug("Batch request finished",
					"worker_id", workerID,
					"index", i,
					"name", result.Name,
					"error", result.Error)
				results[i] = result
				if opts.OnResult != nil {
					callbackMu.Lock()
					opts.OnResult(result)
					callbackMu.Unlock()
				}
			}
		}(w)
	}
	wg.Wait()

	stats := service.BatchStats{
		Requests:   len(requests),
		ByStrategy: make(map[model.SelectionStrategy]int),
	}
	for _, r := range results {
		if r.Error != nil {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		stats.ByStrategy[r.Result.Strategy]++
		if r.Result.BudgetExceeded {
			stats.OverBudget++
		}
	}
	stats.Duration = time.Since(start)

	return results, stats
}

func (e *Engine) runBatchEntry(ctx context.Context, index int, req BatchRequest) BatchResult {
	result := BatchResult{Index: index, Name: req.Name}
	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	if len(req.Detected) > 0 {
		result.Result, result.Error = e.RecommendFromDetected(ctx, req.RecommendationRequest, req.Detected)
	} else {
		result.Result, result.Error = e.Recommend(ctx, req.RecommendationRequest)
	}
	return result
}
