// Package console provides the shared CLI logger.
package console

import (
	"io"
	"log"
	"os"
)

// ConsoleLogger is a leveled logger for CLI output.
// Debug output is suppressed unless DebugLevel is raised.
type ConsoleLogger struct {
	// DebugLevel enables debug output when > 0
	DebugLevel int

	out *log.Logger
}

// Logger is the process-wide console logger used by the CLI entry point.
// Library code should prefer an injected Debugger instead.
var Logger = &ConsoleLogger{
	out: log.New(os.Stdout, "", log.LstdFlags),
}

// Debug logs a message when debug output is enabled.
func (c *ConsoleLogger) Debug(format string, v ...interface{}) {
	if c.DebugLevel > 0 {
		c.out.Printf("[DEBUG] "+format, v...)
	}
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(format string, v ...interface{}) {
	c.out.Printf(format, v...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(format string, v ...interface{}) {
	c.out.Printf("[ERROR] "+format, v...)
}

// Printf implements the Debugger interface used throughout internal packages.
func (c *ConsoleLogger) Printf(format string, v ...interface{}) {
	c.Debug(format, v...)
}

// SetOutput redirects logger output, primarily for --quiet and tests.
func (c *ConsoleLogger) SetOutput(w io.Writer) {
	c.out = log.New(w, "", log.LstdFlags)
}
