package characters

import (
	"context"
	"errors"
	"time"

	"pvp-pipeline/core/gameapi"
	"pvp-pipeline/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher defaults.
const (
	DefaultWorkers        = 8
	DefaultRequestTimeout = 10 * time.Second
)

// ProfileSource fetches the profile document of one character.
type ProfileSource interface {
	CharacterProfile(ctx context.Context, token, realmSlug, characterName string) (map[string]any, error)
}

// FetchResult pairs a candidate with its profile. Payload is nil when the
// fetch failed and Err holds the reason.
type FetchResult struct {
	Candidate Candidate
	Payload   *Payload
	Err       error
}

// DetailFetcher fetches candidate profiles with bounded concurrency.
type DetailFetcher struct {
	source  ProfileSource
	workers int
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewDetailFetcher creates a DetailFetcher. Non-positive workers or timeout
// fall back to the defaults. rec may be nil.
func NewDetailFetcher(source ProfileSource, workers int, timeout time.Duration, logger *zap.Logger, rec *metrics.Recorder) *DetailFetcher {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &DetailFetcher{source: source, workers: workers, timeout: timeout, logger: logger, metrics: rec}
}

// Fetch returns exactly one result per candidate, at the candidate's index.
// It blocks until every fetch resolved. Failures never abort other fetches
// and are reported only through FetchResult.Err. Cancelling ctx does not
// stop fetches already submitted.
func (f *DetailFetcher) Fetch(ctx context.Context, candidates []Candidate, token string) []FetchResult {
	results := make([]FetchResult, len(candidates))
	base := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(f.workers)
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = f.fetchOne(base, c, token)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (f *DetailFetcher) fetchOne(ctx context.Context, c Candidate, token string) FetchResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	doc, err := f.source.CharacterProfile(ctx, token, c.LocationSlug, c.DisplayName)
	if err == nil && doc == nil {
		err = ErrEmptyProfile
	}
	if err != nil {
		fields := []zap.Field{
			zap.String("realm", c.LocationSlug),
			zap.String("name", c.DisplayName),
			zap.Error(err),
		}
		var statusErr *gameapi.StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, zap.Int("status", statusErr.StatusCode))
		}
		f.logger.Warn("Profile fetch failed", fields...)
		f.metrics.Fetch(false)
		return FetchResult{Candidate: c, Err: err}
	}

	f.metrics.Fetch(true)
	return FetchResult{Candidate: c, Payload: NewPayload(doc)}
}
