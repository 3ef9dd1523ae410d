// Package log adapts logging libraries to ports.Logger.
package log

import "github.com/bft-labs/votebox/internal/ports"

// NoopLogger discards everything. It is the default logger of the controller
// and the storage adapters, which stay silent unless a logger is injected.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug discards the message.
func (NoopLogger) Debug(msg string, fields ...ports.Field) {}

// Info discards the message.
func (NoopLogger) Info(msg string, fields ...ports.Field) {}

// Warn discards the message.
func (NoopLogger) Warn(msg string, fields ...ports.Field) {}

// Error discards the message.
func (NoopLogger) Error(msg string, fields ...ports.Field) {}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l ports.Logger) ports.Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}
