package lineedit

import (
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// historyLimit caps the number of entries retained per shell.
const historyLimit = 1000

// Readline is an Editor backed by the readline library. It keeps a shadow
// copy of the history buffer because the backend can only append to its
// own buffer, never read it back out.
type Readline struct {
	inst      *readline.Instance
	completer Completer
	history   []string
}

var _ Editor = (*Readline)(nil)

// Options configures the terminal a Readline editor attaches to. The zero
// value attaches to the process's stdio.
type Options struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
	// IsTerminal reports whether the attached stream is a terminal.
	IsTerminal func() bool
	// Width reports the terminal width in characters.
	Width func() int
}

// NewReadline creates an editor attached to the streams in opts.
func NewReadline(opts Options) (*Readline, error) {
	ed := &Readline{}

	cfg := &readline.Config{
		HistoryLimit:           historyLimit,
		DisableAutoSaveHistory: true,
		AutoComplete:           completerAdapter{ed},
	}
	if opts.Stdin != nil {
		cfg.Stdin = readline.NewCancelableStdin(opts.Stdin)
	}
	if opts.Stdout != nil {
		cfg.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cfg.Stderr = opts.Stderr
	}
	if opts.IsTerminal != nil {
		cfg.FuncIsTerminal = opts.IsTerminal
	}
	if opts.Width != nil {
		cfg.FuncGetWidth = opts.Width
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	inst, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	ed.inst = inst
	return ed, nil
}

// completerAdapter bridges the backend's fixed completion hook to the
// editor's replaceable callback.
type completerAdapter struct {
	ed *Readline
}

func (a completerAdapter) Do(line []rune, pos int) ([][]rune, int) {
	if a.ed.completer == nil {
		return nil, 0
	}
	return a.ed.completer.Do(line, pos)
}

func (r *Readline) ReadLine(prompt string) (string, error) {
	r.inst.SetPrompt(prompt)

	line, err := r.inst.Readline()
	switch {
	case err == readline.ErrInterrupt:
		return "", ErrInterrupt
	case err != nil:
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		r.AppendHistory(line)
	}
	return line, nil
}

func (r *Readline) Completer() Completer {
	return r.completer
}

func (r *Readline) SetCompleter(c Completer) {
	r.completer = c
}

func (r *Readline) AppendHistory(line string) {
	r.history = append(r.history, line)
	if len(r.history) > historyLimit {
		r.history = r.history[len(r.history)-historyLimit:]
	}
	_ = r.inst.SaveHistory(line)
}

func (r *Readline) History() []string {
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Readline) ClearHistory() {
	r.history = nil
	r.inst.Operation.ResetHistory()
}

func (r *Readline) LoadHistoryFile(path string) error {
	entries, err := readHistoryFile(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		r.AppendHistory(entry)
	}
	return nil
}

func (r *Readline) SaveHistoryFile(path string) error {
	return writeHistoryFile(path, r.history)
}

func (r *Readline) Close() error {
	return r.inst.Close()
}
