package calculation

// Logger is a minimal logging interface for the calculation engine.
// The engine only ever traces; errors are returned, never logged.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Warnf(format string, args ...any)  {}
