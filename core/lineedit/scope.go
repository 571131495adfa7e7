package lineedit

import "os"

// Scope runs fn with the editor's completion callback and history buffer
// owned by one shell session.
//
// For an outermost session the previous callback is reinstalled when fn
// returns and, when historyFile is non-empty, the buffer is preloaded from
// and persisted back to that file. When the buffer already holds another
// session's entries this is a nested invocation: the enclosing buffer is
// parked in a private temporary file, the nested session runs against a
// clean buffer, and the enclosing state is restored afterwards.
//
// Restoration runs on every exit path, including a panic or error raised
// inside fn, so nesting is strictly LIFO even under abnormal termination.
func Scope(ed Editor, completer Completer, historyFile string, fn func() error) error {
	if ed == nil {
		// No line-editing backend on this host.
		return fn()
	}

	if len(ed.History()) == 0 {
		return baselineScope(ed, completer, historyFile, fn)
	}

	tmp, err := os.CreateTemp("", "friendlyshell-history-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := ed.SaveHistoryFile(tmpName); err != nil {
		return err
	}
	ed.ClearHistory()

	defer func() {
		ed.ClearHistory()
		_ = ed.LoadHistoryFile(tmpName)
	}()

	return baselineScope(ed, completer, historyFile, fn)
}

// baselineScope provides the single-level behavior: install the callback,
// preload history when a file is given, run fn, then restore the previous
// callback and persist the buffer.
func baselineScope(ed Editor, completer Completer, historyFile string, fn func() error) error {
	if historyFile != "" {
		if err := ed.LoadHistoryFile(historyFile); err != nil {
			return err
		}
	}

	prev := ed.Completer()
	ed.SetCompleter(completer)

	defer func() {
		ed.SetCompleter(prev)
		if historyFile != "" {
			_ = ed.SaveHistoryFile(historyFile)
		}
	}()

	return fn()
}
