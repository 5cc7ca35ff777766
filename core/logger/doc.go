// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The logger is designed to be context-aware in two dimensions. The WithRayID
// helper extracts the RayID from a Fiber context and attaches it to the log
// entry, ensuring that all logs related to a specific request can be
// correlated. The WithCycle helper does the same for ingestion cycles, so the
// reconciliation passes of one orchestrated run share an identifier.
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
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
