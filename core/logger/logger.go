// Package logger provides the leveled output sinks used by friendly shells.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Logger is the output contract consumed by the shell engine. Info, Warning
// and Error address the interactive surface. Debug is a diagnostic-only
// channel that stays silent unless a recorder is attached, so detailed
// failure information never leaks onto the prompt.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

var (
	colorWarning = color.New(color.FgYellow, color.Bold)
	colorError   = color.New(color.FgRed, color.Bold)
)

// Recorder stores one diagnostic message in an external datastore.
type Recorder func(message string) error

// NewJSONLinesRecorder creates a Recorder that exports diagnostics in
// newline delimited JSON object format.
func NewJSONLinesRecorder(w io.Writer) Recorder {
	return func(message string) error {
		entry, err := json.Marshal(struct {
			TimestampMicros int64  `json:"timestamp_micros"`
			Message         string `json:"message"`
		}{
			TimestampMicros: time.Now().UnixNano() / int64(time.Microsecond),
			Message:         message,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(entry))
		return err
	}
}

// Console writes user-facing messages to Out and Err and hands diagnostics
// to an optional Recorder.
type Console struct {
	Out io.Writer
	Err io.Writer

	// Record receives debug messages. Nil discards them.
	Record Recorder

	// Color toggles ANSI coloring of warnings and errors.
	Color bool
}

var _ Logger = (*Console)(nil)

func (c *Console) Info(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c *Console) Warning(format string, args ...interface{}) {
	if c.Color {
		colorWarning.Fprintf(c.Out, format+"\n", args...)
		return
	}
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c *Console) Error(format string, args ...interface{}) {
	if c.Color {
		colorError.Fprintf(c.Err, format+"\n", args...)
		return
	}
	fmt.Fprintf(c.Err, format+"\n", args...)
}

func (c *Console) Debug(format string, args ...interface{}) {
	if c.Record == nil {
		return
	}
	_ = c.Record(fmt.Sprintf(format, args...))
}
