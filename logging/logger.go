// Package logging defines the logger the generator and serializer report
// diagnostics through.
package logging

import (
	"io"
	"log"
)

// Classification is the level of a log entry.
type Classification string

const (
	Warn  Classification = "WARN"
	Debug Classification = "DEBUG"
)

// Logger is an interface for logging entries at certain classifications.
type Logger interface {
	// Logf is expected to support the standard fmt package "verbs".
	Logf(level Classification, format string, v ...interface{})
}

// Noop is a Logger implementation that does not log.
type Noop struct{}

func (Noop) Logf(Classification, string, ...interface{}) {}

// StandardLogger delegates logging to a standard library logger.
type StandardLogger struct {
	Logger *log.Logger
}

// Logf logs the classification and message to the underlying logger.
func (s StandardLogger) Logf(classification Classification, format string, v ...interface{}) {
	if len(classification) != 0 {
		format = string(classification) + " " + format
	}

	s.Logger.Printf(format, v...)
}

// NewStandardLogger returns a StandardLogger writing to writer.
func NewStandardLogger(writer io.Writer) *StandardLogger {
	return &StandardLogger{
		Logger: log.New(writer, "DATACONTRACT ", log.LstdFlags),
	}
}
