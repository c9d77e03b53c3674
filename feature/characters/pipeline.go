package characters

import (
	"context"
	"fmt"
	"time"

	"pvp-pipeline/core/metrics"

	"go.uber.org/zap"
)

// Pipeline selects candidates, fetches their profiles and assembles the rows.
type Pipeline struct {
	selector *Selector
	fetcher  *DetailFetcher
	limit    int
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

// NewPipeline creates a Pipeline. rec may be nil.
func NewPipeline(selector *Selector, fetcher *DetailFetcher, limit int, logger *zap.Logger, rec *metrics.Recorder) *Pipeline {
	return &Pipeline{selector: selector, fetcher: fetcher, limit: limit, logger: logger, metrics: rec}
}

// Run enriches the top ranked characters of date using token for the API.
// Either fatal checkpoint (no candidates, no enriched rows) aborts the run.
func (p *Pipeline) Run(ctx context.Context, date, token string) ([]EnrichedRow, error) {
	start := time.Now()
	candidates, err := p.selector.Select(ctx, date, p.limit)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	p.metrics.ObserveStage("select", time.Since(start))
	p.metrics.CandidatesSelected(len(candidates))
	p.logger.Info("Candidates selected", zap.String("date", date), zap.Int("count", len(candidates)), zap.Int("limit", p.limit))

	start = time.Now()
	results := p.fetcher.Fetch(ctx, candidates, token)
	p.metrics.ObserveStage("fetch", time.Since(start))

	failed := 0
	for _, r := range results {
		if !r.Payload.Present() {
			failed++
		}
	}
	p.logger.Info("Profiles fetched",
		zap.Int("requested", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))

	rows, err := Assemble(p.logger, results)
	if err != nil {
		return nil, fmt.Errorf("assemble profiles for %s: %w", date, err)
	}
	p.metrics.RowsEnriched(len(rows))
	return rows, nil
}
