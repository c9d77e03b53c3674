package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "pvp_pipeline"

// Fetch outcome label values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Recorder collects the metrics of one batch run on a private registry.
// All methods are safe on a nil Recorder.
type Recorder struct {
	registry *prometheus.Registry

	candidatesSelected prometheus.Counter
	fetches            *prometheus.CounterVec
	rowsEnriched       prometheus.Counter
	rowsLoaded         *prometheus.CounterVec
	stageDuration      *prometheus.GaugeVec
	lastSuccess        prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		candidatesSelected: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_selected_total",
			Help:      "Characters selected for profile enrichment",
		}),
		fetches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_fetches_total",
			Help:      "Profile fetches by outcome",
		}, []string{"outcome"}),
		rowsEnriched: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_enriched_total",
			Help:      "Enriched character rows produced",
		}),
		rowsLoaded: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows written per table",
		}, []string{"table"}),
		stageDuration: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall clock duration of the last run of each stage",
		}, []string{"stage"}),
		lastSuccess: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// CandidatesSelected adds n selected candidates.
func (r *Recorder) CandidatesSelected(n int) {
	if r == nil {
		return
	}
	r.candidatesSelected.Add(float64(n))
}

// Fetch counts one profile fetch.
func (r *Recorder) Fetch(ok bool) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeFailed
	}
	r.fetches.WithLabelValues(outcome).Inc()
}

// RowsEnriched adds n enriched rows.
func (r *Recorder) RowsEnriched(n int) {
	if r == nil {
		return
	}
	r.rowsEnriched.Add(float64(n))
}

// RowsLoaded adds n rows written to table.
func (r *Recorder) RowsLoaded(table string, n int) {
	if r == nil {
		return
	}
	r.rowsLoaded.WithLabelValues(table).Add(float64(n))
}

// ObserveStage records how long a stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// MarkSuccess stamps the last successful run time.
func (r *Recorder) MarkSuccess(at time.Time) {
	if r == nil {
		return
	}
	r.lastSuccess.Set(float64(at.Unix()))
}

// Push sends the collected metrics to the pushgateway. It is a no-op without a URL.
func (r *Recorder) Push(ctx context.Context, cfg Config, processingDate string) error {
	if r == nil || cfg.PushgatewayURL == "" {
		return nil
	}
	job := cfg.Job
	if job == "" {
		job = namespace
	}

	pusher := push.New(cfg.PushgatewayURL, job).Gatherer(r.registry)
	if processingDate != "" {
		pusher = pusher.Grouping("processing_date", processingDate)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
