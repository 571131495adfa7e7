package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit/lineedittest"
)

func runesToStrings(in [][]rune) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, string(r))
	}
	return out
}

func newCompletionShell(t *testing.T) (*Shell, *completer) {
	t.Helper()

	s := New(lineedittest.NewEditor(), &recordingLogger{})
	s.MustRegister(&Command{
		Name:    "deploy",
		Summary: "Deploys the service to a region",
		Params:  []Param{{Name: "region"}, {Name: "notes", Optional: true}},
		Complete: func(_ []string, index int, _ int) []string {
			if index != 0 {
				return nil
			}
			return []string{"us-east", "us-west", "eu-central"}
		},
		Run: noopHandler,
	})

	c, ok := s.newCompleter().(*completer)
	require.True(t, ok)
	return s, c
}

func TestCompleterNilWithoutEditor(t *testing.T) {
	s := New(nil, &recordingLogger{})
	assert.Nil(t, s.newCompleter())
}

func TestCompleteCommandNames(t *testing.T) {
	_, c := newCompletionShell(t)

	line := []rune("cl")
	candidates, length := c.Do(line, len(line))

	assert.Equal(t, []string{"ear_history", "ose"}, runesToStrings(candidates))
	assert.Equal(t, 2, length)
}

func TestCompleteEmptyTokenListsAllCommands(t *testing.T) {
	_, c := newCompletionShell(t)

	candidates, length := c.Do(nil, 0)

	assert.Equal(t, []string{
		"clear_history", "close", "deploy", "exit", "help", "native_shell",
	}, runesToStrings(candidates))
	assert.Equal(t, 0, length)
}

func TestCompleteParameterDelegatesToCommand(t *testing.T) {
	_, c := newCompletionShell(t)

	line := []rune("deploy us")
	candidates, length := c.Do(line, len(line))

	assert.Equal(t, []string{"-east", "-west"}, runesToStrings(candidates))
	assert.Equal(t, 2, length)
}

func TestCompleteParameterWithoutCallback(t *testing.T) {
	_, c := newCompletionShell(t)

	line := []rune("help cl")
	candidates, length := c.Do(line, len(line))

	assert.Empty(t, candidates)
	assert.Equal(t, 2, length)
}

func TestCompleteUnknownCommandParameter(t *testing.T) {
	_, c := newCompletionShell(t)

	line := []rune("bogus arg")
	candidates, _ := c.Do(line, len(line))
	assert.Empty(t, candidates)
}

func TestCompleteSecondParameterIndex(t *testing.T) {
	s, _ := newCompletionShell(t)

	var gotIndex = -1
	s.MustRegister(&Command{
		Name:   "tag",
		Params: []Param{{Name: "name"}, {Name: "value"}},
		Complete: func(params []string, index int, _ int) []string {
			gotIndex = index
			return []string{"release"}
		},
		Run: noopHandler,
	})
	c, ok := s.newCompleter().(*completer)
	require.True(t, ok)

	line := []rune("tag build rel")
	candidates, length := c.Do(line, len(line))

	assert.Equal(t, 1, gotIndex)
	assert.Equal(t, []string{"ease"}, runesToStrings(candidates))
	assert.Equal(t, 3, length)
}
