// Package lineedittest provides an in-memory Editor for testing shells
// without a terminal.
package lineedittest

import (
	"io"
	"strings"

	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit"
)

// Response is one scripted result for a ReadLine call.
type Response struct {
	Line string
	Err  error
}

// Editor serves ReadLine calls from a script and records everything a test
// might want to assert on. Exhausting the script yields io.EOF.
type Editor struct {
	Script []Response

	// Prompts records the prompt passed to each ReadLine call.
	Prompts []string
	// Closed reports whether Close was called.
	Closed bool

	pos       int
	completer lineedit.Completer
	history   []string
	files     map[string][]string
}

var _ lineedit.Editor = (*Editor)(nil)

// NewEditor creates an editor that replays lines in order.
func NewEditor(lines ...string) *Editor {
	ed := &Editor{}
	for _, line := range lines {
		ed.Script = append(ed.Script, Response{Line: line})
	}
	return ed
}

func (e *Editor) ReadLine(prompt string) (string, error) {
	e.Prompts = append(e.Prompts, prompt)

	if e.pos >= len(e.Script) {
		return "", io.EOF
	}
	resp := e.Script[e.pos]
	e.pos++

	if resp.Err != nil {
		return "", resp.Err
	}
	if strings.TrimSpace(resp.Line) != "" {
		e.AppendHistory(resp.Line)
	}
	return resp.Line, nil
}

func (e *Editor) Completer() lineedit.Completer {
	return e.completer
}

func (e *Editor) SetCompleter(c lineedit.Completer) {
	e.completer = c
}

func (e *Editor) AppendHistory(line string) {
	e.history = append(e.history, line)
}

func (e *Editor) History() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Editor) ClearHistory() {
	e.history = nil
}

func (e *Editor) LoadHistoryFile(path string) error {
	e.history = append(e.history, e.files[path]...)
	return nil
}

func (e *Editor) SaveHistoryFile(path string) error {
	if e.files == nil {
		e.files = make(map[string][]string)
	}
	entries := make([]string, len(e.history))
	copy(entries, e.history)
	e.files[path] = entries
	return nil
}

// FileEntries returns the history persisted under path, if any.
func (e *Editor) FileEntries(path string) []string {
	return e.files[path]
}

func (e *Editor) Close() error {
	e.Closed = true
	return nil
}
