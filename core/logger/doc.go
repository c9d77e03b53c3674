// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber read API.
//
// # Correlation
//
// Batch commands tag every entry with a run id (WithRunID) so a daily run can be followed
// across extraction, enrichment and publishing. HTTP handlers use WithRayID, which reads the
// request id placed in the Fiber context by the rayid middleware.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	log.Info("Pipeline started")
package logger
