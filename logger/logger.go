// Package logger is the minimal logging surface the parser emits
// through. Hosts bring their own implementation; the default writes
// to the stdlib log package and can be silenced globally via
// LoggerEnabled, the noop one discards everything.
package logger

import (
	"log"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

var LoggerEnabled = true

type DefaultLogger struct {
	name string
}

func NewDefaultLogger(name string) *DefaultLogger {
	return &DefaultLogger{name: name}
}

func (d *DefaultLogger) Debug(format string, args ...any) {
	d.printf("DEBUG", format, args...)
}

func (d *DefaultLogger) Info(format string, args ...any) {
	d.printf("INFO", format, args...)
}

func (d *DefaultLogger) Error(format string, args ...any) {
	d.printf("ERROR", format, args...)
}

func (d *DefaultLogger) printf(level, format string, args ...any) {
	if !LoggerEnabled {
		return
	}
	log.Printf("["+level+"] "+d.name+" | "+format+"\n", args...)
}

// NoopLogger discards everything, handy for tests and for hosts
// that wire their own logging.
type NoopLogger struct{}

func NewNoopLogger() *NoopLogger { return &NoopLogger{} }

func (NoopLogger) Debug(string, ...any) {}
func (NoopLogger) Info(string, ...any)  {}
func (NoopLogger) Error(string, ...any) {}
