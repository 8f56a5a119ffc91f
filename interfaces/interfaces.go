package interfaces

// Logger defines the interface for logging
// Minimal interface with only essential formatted logging methods
type Logger interface {
	// Core logging methods
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Debugf(format string, args ...interface{})
}
