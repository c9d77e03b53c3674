// Package metrics records batch run metrics with Prometheus.
//
// A Recorder owns a private registry so repeated runs inside one test binary
// never collide on the default registerer. At the end of a run the collected
// values are pushed to a pushgateway, grouped by processing date.
package metrics
