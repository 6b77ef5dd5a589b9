package interfaces

// Logger defines the interface for logging throughout the application.
// Fields are attached as structured key/value pairs.
//
// Example usage:
//
//	logger.Debug("Fetched children page", map[string]interface{}{
//		"block_id": id,
//		"results":  len(page.Results),
//	})
type Logger interface {
	// Debug logs detailed troubleshooting information.
	Debug(msg string, fields map[string]interface{})

	// Info logs general operational messages.
	Info(msg string, fields map[string]interface{})

	// Warn logs degraded but non-fatal conditions.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that need attention.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Services fall back to it when no logger is
// injected.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
