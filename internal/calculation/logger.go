package calculation

// Logger receives diagnostics from projections and comparisons. Trajectory
// builds log at debug level, comparison verdicts at info; errors are returned
// to the caller, never logged.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all output. It is the default on every engine component,
// so library callers pay nothing unless they install a logger.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}
