package characters

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pvp-pipeline/core/gameapi"
	"pvp-pipeline/core/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubSource answers from a map keyed by character name.
type stubSource struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	errs     map[string]error
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	calls    []string
}

func (s *stubSource) CharacterProfile(ctx context.Context, token, realmSlug, name string) (map[string]any, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		cur := s.maxSeen.Load()
		if n <= cur || s.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, realmSlug+"/"+name)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.errs[name]; ok {
		return nil, err
	}
	if doc, ok := s.docs[name]; ok {
		return doc, nil
	}
	return nil, &gameapi.StatusError{StatusCode: 404, URL: name}
}

func candidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{
			EntityID:      int64(i + 1),
			DisplayName:   fmt.Sprintf("c%d", i+1),
			LocationSlug:  "stormrage",
			BracketID:     "3v3",
			SelectionRank: i + 1,
		}
	}
	return out
}

func profile(faction string) map[string]any {
	return map[string]any{"faction": map[string]any{"name": faction}}
}

func TestDetailFetcher_Isolation(t *testing.T) {
	cands := candidates(5)
	src := &stubSource{
		docs: map[string]map[string]any{
			"c1": profile("Horde"), "c2": profile("Alliance"), "c4": profile("Horde"), "c5": profile("Horde"),
		},
		errs: map[string]error{"c3": errors.New("connection reset")},
	}
	core, logs := observer.New(zap.WarnLevel)
	rec := metrics.NewRecorder()

	results := NewDetailFetcher(src, 2, time.Second, zap.New(core), rec).Fetch(context.Background(), cands, "tok")

	require.Len(t, results, len(cands))
	for i, r := range results {
		assert.Equal(t, cands[i], r.Candidate, "result %d is in its candidate's slot", i)
	}
	assert.Nil(t, results[2].Payload)
	assert.ErrorContains(t, results[2].Err, "connection reset")
	for _, i := range []int{0, 1, 3, 4} {
		assert.True(t, results[i].Payload.Present())
		assert.NoError(t, results[i].Err)
	}
	assert.Equal(t, "Alliance", *results[1].Payload.String("faction", "name"))

	assert.Equal(t, 1, logs.FilterMessage("Profile fetch failed").Len())
}

func TestDetailFetcher_StatusFailureLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	src := &stubSource{}

	results := NewDetailFetcher(src, 1, time.Second, zap.New(core), nil).Fetch(context.Background(), candidates(1), "tok")

	require.Len(t, results, 1)
	var statusErr *gameapi.StatusError
	require.ErrorAs(t, results[0].Err, &statusErr)

	entries := logs.FilterMessage("Profile fetch failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(404), entries[0].ContextMap()["status"])
	assert.Equal(t, "stormrage", entries[0].ContextMap()["realm"])
}

func TestDetailFetcher_EmptyDocument(t *testing.T) {
	src := &stubSource{docs: map[string]map[string]any{"c1": nil}}
	results := NewDetailFetcher(src, 1, time.Second, zap.NewNop(), nil).Fetch(context.Background(), candidates(1), "tok")
	assert.ErrorIs(t, results[0].Err, ErrEmptyProfile)
	assert.False(t, results[0].Payload.Present())
}

func TestDetailFetcher_BoundedConcurrency(t *testing.T) {
	docs := map[string]map[string]any{}
	for i := 1; i <= 30; i++ {
		docs[fmt.Sprintf("c%d", i)] = profile("Horde")
	}
	src := &stubSource{docs: docs, delay: 5 * time.Millisecond}

	results := NewDetailFetcher(src, 3, time.Second, zap.NewNop(), nil).Fetch(context.Background(), candidates(30), "tok")

	assert.Len(t, results, 30)
	assert.LessOrEqual(t, src.maxSeen.Load(), int32(3))
	assert.Len(t, src.calls, 30)
}

func TestDetailFetcher_PerRequestTimeout(t *testing.T) {
	src := &stubSource{docs: map[string]map[string]any{"c1": profile("Horde")}, delay: time.Second}

	start := time.Now()
	results := NewDetailFetcher(src, 2, 20*time.Millisecond, zap.NewNop(), nil).Fetch(context.Background(), candidates(2), "tok")

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	for _, r := range results {
		assert.Nil(t, r.Payload)
		assert.ErrorIs(t, r.Err, context.DeadlineExceeded)
	}
}

func TestDetailFetcher_CallerCancellationDoesNotAbort(t *testing.T) {
	src := &stubSource{docs: map[string]map[string]any{"c1": profile("Horde"), "c2": profile("Horde")}, delay: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewDetailFetcher(src, 1, time.Second, zap.NewNop(), nil).Fetch(ctx, candidates(2), "tok")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Payload.Present())
	}
}

func TestDetailFetcher_Defaults(t *testing.T) {
	f := NewDetailFetcher(&stubSource{}, 0, 0, zap.NewNop(), nil)
	assert.Equal(t, DefaultWorkers, f.workers)
	assert.Equal(t, DefaultRequestTimeout, f.timeout)

	assert.Empty(t, f.Fetch(context.Background(), nil, "tok"))
}
