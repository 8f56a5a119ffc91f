// Package logging provides the CLI's interfaces.Logger implementation.
// Diagnostics go to stderr so they never interleave with rendered output.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/padwan-ai/padwan-cli/interfaces"
)

// SimpleLogger is a level-aware logger writing formatted lines
type SimpleLogger struct {
	output io.Writer
	level  string
}

// New creates a logger writing to stderr. Level "debug" enables Debugf
// output; anything else silences it.
func New(level string) *SimpleLogger {
	return &SimpleLogger{output: os.Stderr, level: level}
}

// NewWithOutput creates a logger writing to the given writer
func NewWithOutput(output io.Writer, level string) *SimpleLogger {
	return &SimpleLogger{output: output, level: level}
}

var _ interfaces.Logger = (*SimpleLogger)(nil)

func (l *SimpleLogger) Infof(format string, v ...any) {
	_, _ = fmt.Fprintf(l.output, "[INFO] "+format+"\n", v...)
}

func (l *SimpleLogger) Errorf(format string, v ...any) {
	_, _ = fmt.Fprintf(l.output, "[ERROR] "+format+"\n", v...)
}

func (l *SimpleLogger) Debugf(format string, args ...interface{}) {
	if l.level == "debug" {
		_, _ = fmt.Fprintf(l.output, "[DEBUG] "+format+"\n", args...)
	}
}
