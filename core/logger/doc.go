// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and child loggers that carry the fields every sync log line needs.
//
// # Context Awareness
//
// WithJob tags a logger with the job type ("catalog", "inventory") and the vendor source being
// processed, so a single run can be followed across fetch, diff, parse and reconcile.
// WithRayID extracts the RayID from a Fiber context for the operational endpoints.
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
//	l := logger.WithJob(log, "catalog", "ingram")
//	l.Info("Feed fetched", zap.Int("bytes", len(doc)))
package logger
