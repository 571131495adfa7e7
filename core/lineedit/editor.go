// Package lineedit abstracts the line-editing backend that gives friendly
// shells interactive input, tab-completion and per-session history.
package lineedit

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// ErrInterrupt is returned by ReadLine when the user cancels the pending
// read, e.g. with Ctrl+C.
var ErrInterrupt = errors.New("read interrupted")

// Completer produces completion candidates for the token under the cursor.
// It receives the full line and cursor position and returns the candidate
// suffixes together with the length of the token being completed.
type Completer interface {
	Do(line []rune, pos int) (candidates [][]rune, tokenLen int)
}

// Editor is the capability contract for a line-editing backend. The
// completion callback and the in-memory history buffer are shared,
// process-wide state: Scope governs who owns them at any moment.
type Editor interface {
	// ReadLine blocks until a full line is available. It returns
	// ErrInterrupt when the user cancels the read and io.EOF when the
	// input source is closed.
	ReadLine(prompt string) (string, error)

	// Completer returns the installed completion callback, possibly nil.
	Completer() Completer
	// SetCompleter installs the completion callback, replacing any
	// previous one.
	SetCompleter(c Completer)

	// AppendHistory adds one line to the in-memory history buffer.
	AppendHistory(line string)
	// History returns a snapshot of the in-memory history buffer.
	History() []string
	// ClearHistory empties the in-memory history buffer.
	ClearHistory()
	// LoadHistoryFile appends the entries stored at path to the buffer.
	// A missing file is not an error.
	LoadHistoryFile(path string) error
	// SaveHistoryFile persists the buffer to path, one line per entry,
	// overwriting any previous contents.
	SaveHistoryFile(path string) error

	Close() error
}

// readHistoryFile loads one history entry per line from path.
func readHistoryFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// writeHistoryFile persists entries to path with owner-only access, since
// command history may contain secrets.
func writeHistoryFile(path string, entries []string) error {
	var contents string
	if len(entries) > 0 {
		contents = strings.Join(entries, "\n") + "\n"
	}
	return os.WriteFile(path, []byte(contents), 0600)
}
