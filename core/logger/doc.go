// Package logger provides a structured logging facility based on Zap.
//
// Debug level uses zap's development configuration, every other level the
// production one. The console format prints colored levels without stack
// traces. Logs go to stderr so command output on stdout stays clean.
//
// WithRayID attaches the request id set by the rayid middleware so all logs
// of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
