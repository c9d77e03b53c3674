package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.CandidatesSelected(3)
	r.Fetch(true)
	r.Fetch(true)
	r.Fetch(false)
	r.RowsEnriched(2)
	r.RowsLoaded("cur_chinfo", 2)
	r.ObserveStage("select", 1500*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.candidatesSelected))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rowsEnriched))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rowsLoaded.WithLabelValues("cur_chinfo")))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.stageDuration.WithLabelValues("select")))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.CandidatesSelected(1)
		r.Fetch(false)
		r.RowsEnriched(1)
		r.RowsLoaded("t", 1)
		r.ObserveStage("s", time.Second)
		r.MarkSuccess(time.Now())
	})
	assert.NoError(t, r.Push(context.Background(), Config{PushgatewayURL: "http://unused"}, ""))
}

func TestRecorder_Push(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		body, _ := io.ReadAll(req.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.RowsEnriched(5)

	err := r.Push(context.Background(), Config{PushgatewayURL: srv.URL, Job: "daily"}, "20250115")
	require.NoError(t, err)
	assert.Equal(t, "/metrics/job/daily/processing_date/20250115", gotPath)
	assert.NotEmpty(t, gotBody)
}

func TestRecorder_PushDisabled(t *testing.T) {
	r := NewRecorder()
	assert.NoError(t, r.Push(context.Background(), Config{}, "20250115"))
}

func TestRecorder_PushRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	r := NewRecorder()
	err := r.Push(context.Background(), Config{PushgatewayURL: srv.URL}, "")
	assert.ErrorContains(t, err, "push metrics")
}
