// Package core implements the friendly shell engine: an embeddable
// read-eval loop that tokenizes input lines, resolves them against an
// explicit command registry, binds arguments and invokes handlers, with
// synchronous sub-shell nesting and isolated per-level history.
package core

import (
	"bufio"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit"
	"github.com/TheFriendlyCoder/friendlyshell/core/logger"
	"github.com/TheFriendlyCoder/friendlyshell/core/parser"
)

const (
	// DefaultPrompt precedes the cursor when prompting for command entry.
	DefaultPrompt = "> "
	// DefaultCommentDelimiter marks lines to be skipped without
	// processing.
	DefaultCommentDelimiter = "#"
)

var envRegex = regexp.MustCompile(`\$(?:\{\w+\}|\w+)`)

// Shell is one interactive command interpreter session. A shell may spawn
// nested sub-shells via RunSubshell; the parent stays suspended for the
// child's entire lifetime.
type Shell struct {
	// Prompt precedes the cursor when prompting for command entry.
	Prompt string
	// Banner is displayed once before the first prompt when set.
	Banner string
	// CommentDelimiter marks lines to skip. Defaults to "#".
	CommentDelimiter string
	// HistoryFile is an optional path where this shell persists its input
	// history between runs, one entry per line.
	HistoryFile string

	registry *Registry
	log      logger.Logger
	editor   lineedit.Editor
	scanner  *bufio.Scanner
	parent   *Shell
	done     bool
}

// New creates a shell with the built-in vocabulary registered. editor may
// be nil for hosts without a line-editing backend; log may be nil to use
// the default console sinks.
func New(editor lineedit.Editor, log logger.Logger) *Shell {
	if log == nil {
		log = &logger.Console{Out: os.Stdout, Err: os.Stderr, Color: true}
	}

	s := &Shell{
		Prompt:           DefaultPrompt,
		CommentDelimiter: DefaultCommentDelimiter,
		registry:         NewRegistry(),
		log:              log,
		editor:           editor,
	}
	registerBuiltins(s.registry)
	return s
}

// Register adds a command to this shell's vocabulary.
func (s *Shell) Register(cmd *Command) error {
	return s.registry.Register(cmd)
}

// MustRegister is Register for static command tables.
func (s *Shell) MustRegister(cmd *Command) {
	s.registry.MustRegister(cmd)
}

// Registry returns the shell's command registry.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Logger returns the shell's output sinks, for use inside handlers.
func (s *Shell) Logger() logger.Logger {
	return s.log
}

// Done reports whether this session has received a terminate request. The
// flag only ever transitions from false to true.
func (s *Shell) Done() bool {
	return s.done
}

// Run drives the read-eval loop until the session terminates. Input comes
// from the attached editor, or from input when non-nil: a finite stream of
// command lines whose exhaustion acts as an implicit exit request. Calling
// Run on a session that is already done falls through without processing
// input.
func (s *Shell) Run(input io.Reader) error {
	if input != nil {
		s.scanner = bufio.NewScanner(input)
	}
	return s.run()
}

// RunSubshell suspends this shell and synchronously drives child's read
// loop to completion. The child inherits this shell's input source and
// holds a back-pointer used for exit propagation; it gets its own isolated
// history scope for the duration.
func (s *Shell) RunSubshell(child *Shell) error {
	child.parent = s
	child.editor = s.editor
	child.scanner = s.scanner
	return child.run()
}

func (s *Shell) run() error {
	return lineedit.Scope(s.editor, s.newCompleter(), s.HistoryFile, func() error {
		s.loop()
		return nil
	})
}

func (s *Shell) loop() {
	if s.Banner != "" {
		s.log.Info("%s", s.Banner)
	}

	for !s.done {
		if s.step() == stepExit {
			return
		}
	}
}

// stepResult tags the outcome of one loop iteration. Every failure tied to
// a single line maps to stepContinue after reporting; only exit and
// cancellation conditions produce stepExit.
type stepResult int

const (
	stepContinue stepResult = iota
	stepExit
)

func (s *Shell) step() stepResult {
	line, err := s.readInput()
	switch {
	case err == io.EOF:
		// End of the input source. Treat it as an exit request so
		// non-interactive scripts don't need a trailing exit command.
		s.Exit()
		return stepExit
	case errors.Is(err, lineedit.ErrInterrupt):
		// A single interrupt terminates only the innermost session,
		// returning control to the parent so the user can recover there.
		s.log.Debug("User interrupted input, closing shell...")
		s.done = true
		return stepExit
	case err != nil:
		s.log.Error("Unexpected error during input sequence: %v", err)
		s.log.Debug("input failure detail: %+v", err)
		s.done = true
		return stepExit
	}

	if strings.TrimSpace(line) == "" {
		return stepContinue
	}
	if strings.HasPrefix(line, s.CommentDelimiter) {
		s.log.Debug("Skipping comment line %s", line)
		return stepContinue
	}

	line = ExpandEnv(line)

	parsed, err := parser.Parse(line)
	if err != nil {
		s.reportParseError(err)
		return stepContinue
	}
	if parsed.Empty() {
		return stepContinue
	}

	cmd, err := s.registry.Resolve(parsed.Command)
	if err != nil {
		s.log.Error("Command not found: %s", parsed.Command)
		return stepContinue
	}

	args, err := Bind(cmd, parsed.Params)
	if err != nil {
		s.log.Error("%v", err)
		return stepContinue
	}

	s.invoke(cmd, args)
	return stepContinue
}

func (s *Shell) readInput() (string, error) {
	if s.scanner != nil {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := s.scanner.Text()
		// Echo scripted lines so transcripts read like an interactive
		// session.
		s.log.Info("%s%s", s.Prompt, line)
		return line, nil
	}

	if s.editor == nil {
		return "", io.EOF
	}
	return s.editor.ReadLine(s.Prompt)
}

// invoke calls the handler with bound arguments, containing any failure to
// this iteration. Summary information goes to the error sink; the detail
// is reserved for the debug channel so the interactive surface stays free
// of technical noise.
func (s *Shell) invoke(cmd *Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Unknown error detected: %v", r)
			s.log.Debug("panic in command %s: %v", cmd.Name, r)
		}
	}()

	err := cmd.Run(s, args)
	switch {
	case err == nil:
	case errors.Is(err, ErrInterrupt):
		s.log.Debug("User interrupted operation...")
		// There is usually partial output by now; a blank line keeps the
		// next prompt below it.
		s.log.Info("")
	default:
		s.log.Error("Unknown error detected: %v", err)
		s.log.Debug("command %s failed: %+v", cmd.Name, err)
	}
}

func (s *Shell) reportParseError(err error) {
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		s.log.Error("Parsing error: %v", err)
		return
	}

	s.log.Error("Parsing error:")
	s.log.Error("\t%s", perr.Line)
	s.log.Error("\t%s^", strings.Repeat(" ", perr.Col))
	s.log.Debug("Details: %v", perr)
}

// Exit marks this session and every ancestor done. The loops observe the
// flag after their current iteration, unwinding the whole session stack.
func (s *Shell) Exit() {
	s.log.Debug("Terminating interpreter...")
	s.done = true
	if s.parent != nil {
		s.parent.Exit()
	}
}

// Close marks only this session done, returning control to the parent
// shell or the console, whichever comes next in the ancestry.
func (s *Shell) Close() {
	s.log.Debug("Closing shell (%s)", s.Prompt)
	s.done = true
}

// ExpandEnv substitutes $NAME and ${NAME} references with values from the
// process environment. Undefined variables stay as literal text.
func ExpandEnv(line string) string {
	return envRegex.ReplaceAllStringFunc(line, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if strings.HasPrefix(name, "{") {
			name = strings.TrimSuffix(strings.TrimPrefix(name, "{"), "}")
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}
