// Package parser splits raw command lines into a command token and an
// ordered list of parameter tokens.
package parser

import (
	"fmt"

	shlex "github.com/anmitsu/go-shlex"
)

// CommandLine is the parsed form of a single input line. It lives only for
// the iteration that produced it.
type CommandLine struct {
	// Command is the token preceding the first parameter.
	Command string
	// Params holds the remaining tokens in insertion order.
	Params []string
}

// Empty reports whether the line held no tokens at all.
func (c *CommandLine) Empty() bool {
	return c.Command == "" && len(c.Params) == 0
}

// ParseError reports a line that could not be tokenized. Col is the
// zero-based column of the offending character, suitable for rendering a
// caret under the echoed input.
type ParseError struct {
	Line string
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: bad token at column %d", e.Line, e.Col+1)
}

// Parse tokenizes a full line using POSIX-style quoting rules. Tokens may
// be quoted to embed whitespace. The grammar either consumes the entire
// line or fails; there are no partial results.
func Parse(line string) (*CommandLine, error) {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		return nil, &ParseError{Line: line, Col: offendingCol(line)}
	}
	if len(tokens) == 0 {
		return &CommandLine{}, nil
	}
	return &CommandLine{Command: tokens[0], Params: tokens[1:]}, nil
}

// offendingCol locates the character that broke tokenization. The lexer
// only fails on unterminated quoting or a dangling escape, so scanning for
// the unmatched opener recovers the column it lost.
func offendingCol(line string) int {
	var quote rune
	col := 0
	escaped := false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote == 0 && r == '\\':
			escaped = true
			col = i
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
			col = i
		case quote == r:
			quote = 0
		}
	}
	if quote != 0 || escaped {
		return col
	}
	return len(line) - 1
}
