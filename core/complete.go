package core

import (
	"sort"
	"strings"

	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit"
	"github.com/TheFriendlyCoder/friendlyshell/core/parser"
)

// newCompleter builds the completion callback installed for the duration of
// this shell's read loop. Nil when there is no line-editing backend.
func (s *Shell) newCompleter() lineedit.Completer {
	if s.editor == nil {
		return nil
	}
	return &completer{shell: s}
}

// completer adapts the shell's vocabulary to the line editor's completion
// contract. The first token on a line completes against command names;
// later tokens defer to the resolved command's own completion callback.
type completer struct {
	shell *Shell
}

// Do returns candidate suffixes for the token ending at pos, plus the
// length of that token. Completion must never disturb the prompt, so every
// failure path returns no candidates.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	buf := string(line[:pos])
	start := strings.LastIndexAny(buf, " \t") + 1
	token := buf[start:]

	var matches []string
	if start == 0 {
		matches = c.commandNames(token)
	} else {
		matches = c.paramMatches(string(line), start, token)
	}

	candidates := make([][]rune, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, []rune(m[len(token):]))
	}
	return candidates, len([]rune(token))
}

func (c *completer) commandNames(token string) []string {
	var matches []string
	for _, cmd := range c.shell.registry.Commands() {
		if strings.HasPrefix(cmd.Name, token) {
			matches = append(matches, cmd.Name)
		}
	}
	sort.Strings(matches)
	return matches
}

func (c *completer) paramMatches(line string, start int, token string) []string {
	parsed, err := parser.Parse(line)
	if err != nil || parsed.Empty() {
		return nil
	}

	cmd, err := c.shell.registry.Resolve(parsed.Command)
	if err != nil || cmd.Complete == nil {
		return nil
	}

	// Map the cursor token back to its parsed parameter. Quoting can make
	// the raw token differ from the parsed one, in which case completion is
	// skipped rather than guessed at.
	index := -1
	searchFrom := len(parsed.Command)
	for i, p := range parsed.Params {
		at := strings.Index(line[searchFrom:], p)
		if at < 0 {
			return nil
		}
		at += searchFrom
		if at == start {
			index = i
			break
		}
		searchFrom = at + len(p)
	}
	if index < 0 || !strings.HasPrefix(parsed.Params[index], token) {
		return nil
	}

	var matches []string
	for _, m := range cmd.Complete(parsed.Params, index, len(token)) {
		if strings.HasPrefix(m, token) {
			matches = append(matches, m)
		}
	}
	return matches
}
