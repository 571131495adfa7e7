package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit"
	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit/lineedittest"
)

// recordingLogger captures every message per level for assertions.
type recordingLogger struct {
	infos  []string
	warns  []string
	errs   []string
	debugs []string
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warning(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debug(format string, args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

// newTestShell builds a shell with a recording logger and one "record"
// command that captures its bound arguments.
func newTestShell(t *testing.T) (*Shell, *recordingLogger, *[][]string) {
	t.Helper()

	log := &recordingLogger{}
	s := New(nil, log)

	var calls [][]string
	s.MustRegister(&Command{
		Name:    "record",
		Summary: "Records its arguments for the test",
		Params:  []Param{{Name: "text"}},
		Run: func(_ *Shell, args []string) error {
			calls = append(calls, args)
			return nil
		},
	})
	return s, log, &calls
}

func TestShellSkipsBlankAndCommentLines(t *testing.T) {
	s, log, calls := newTestShell(t)

	input := "\n   \n# a comment\nrecord hello\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.Equal(t, [][]string{{"hello"}}, *calls)
	// Scripted lines echo with the prompt so transcripts read like a
	// session.
	assert.Contains(t, log.infos, "> record hello")
	assert.Contains(t, log.infos, "> # a comment")
}

func TestShellExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("FS_REGION", "us-east")
	s, _, calls := newTestShell(t)

	input := "record $FS_REGION ${FS_REGION} $FS_UNDEFINED\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"us-east us-east $FS_UNDEFINED"}, (*calls)[0])
}

func TestShellUnknownCommandContinues(t *testing.T) {
	s, log, calls := newTestShell(t)

	input := "bogus\nrecord after\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.Contains(t, log.errs, "Command not found: bogus")
	assert.Equal(t, [][]string{{"after"}}, *calls)
}

func TestShellReportsParseErrorWithCaret(t *testing.T) {
	s, log, calls := newTestShell(t)

	input := "record \"unterminated\nrecord after\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	require.GreaterOrEqual(t, len(log.errs), 3)
	assert.Equal(t, "Parsing error:", log.errs[0])
	assert.Equal(t, "\trecord \"unterminated", log.errs[1])
	assert.Equal(t, "\t       ^", log.errs[2])
	assert.Equal(t, [][]string{{"after"}}, *calls)
}

func TestShellArityErrorSkipsHandler(t *testing.T) {
	s, log, calls := newTestShell(t)

	input := "record\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.Empty(t, *calls)
	assert.Contains(t, log.errs, "Command record requires 1 parameters but 0 provided.")
}

func TestShellEOFActsAsExit(t *testing.T) {
	s, _, calls := newTestShell(t)

	require.NoError(t, s.Run(strings.NewReader("record hi\n")))
	assert.True(t, s.Done())
	assert.Equal(t, [][]string{{"hi"}}, *calls)
}

func TestShellRunAfterDoneFallsThrough(t *testing.T) {
	s, _, calls := newTestShell(t)

	require.NoError(t, s.Run(strings.NewReader("exit\n")))
	require.True(t, s.Done())

	require.NoError(t, s.Run(strings.NewReader("record never\n")))
	assert.Empty(t, *calls)
}

func TestShellHandlerErrorContained(t *testing.T) {
	s, log, calls := newTestShell(t)
	s.MustRegister(&Command{
		Name:    "boom",
		Summary: "Always fails",
		Run: func(_ *Shell, _ []string) error {
			return fmt.Errorf("database offline")
		},
	})

	input := "boom\nrecord after\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.Contains(t, log.errs, "Unknown error detected: database offline")
	assert.Equal(t, [][]string{{"after"}}, *calls)
}

func TestShellHandlerPanicContained(t *testing.T) {
	s, log, calls := newTestShell(t)
	s.MustRegister(&Command{
		Name:    "crash",
		Summary: "Always panics",
		Run: func(_ *Shell, _ []string) error {
			panic("nil dereference somewhere deep")
		},
	})

	input := "crash\nrecord after\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.Contains(t, log.errs, "Unknown error detected: nil dereference somewhere deep")
	assert.Equal(t, [][]string{{"after"}}, *calls)
}

func TestShellHandlerInterruptPrintsSeparator(t *testing.T) {
	s, log, _ := newTestShell(t)
	s.MustRegister(&Command{
		Name:    "slow",
		Summary: "Cancellable operation",
		Run: func(_ *Shell, _ []string) error {
			return ErrInterrupt
		},
	})

	require.NoError(t, s.Run(strings.NewReader("slow\nexit\n")))

	assert.Contains(t, log.infos, "")
	assert.Empty(t, log.errs)
}

func TestShellCustomCommentDelimiter(t *testing.T) {
	s, _, calls := newTestShell(t)
	s.CommentDelimiter = ";"

	input := "; skipped\n# record this\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	// "#" is an ordinary token now and fails resolution, but nothing runs.
	assert.Empty(t, *calls)
}

func TestShellBannerShownOnce(t *testing.T) {
	s, log, _ := newTestShell(t)
	s.Banner = "Welcome to the test shell"

	require.NoError(t, s.Run(strings.NewReader("exit\n")))
	assert.Equal(t, "Welcome to the test shell", log.infos[0])
}

// registerSubshell wires a "settings" command onto parent that runs a
// nested shell carrying the same logger and shared call recorder.
func registerSubshell(parent *Shell, log *recordingLogger, calls *[][]string) *Shell {
	child := New(nil, log)
	child.Prompt = "settings> "
	child.MustRegister(&Command{
		Name:    "record",
		Summary: "Records its arguments for the test",
		Params:  []Param{{Name: "text"}},
		Run: func(_ *Shell, args []string) error {
			*calls = append(*calls, args)
			return nil
		},
	})

	parent.MustRegister(&Command{
		Name:    "settings",
		Summary: "Opens the nested settings shell",
		Run: func(s *Shell, _ []string) error {
			return s.RunSubshell(child)
		},
	})
	return child
}

func TestSubshellExitPropagatesToParent(t *testing.T) {
	s, log, calls := newTestShell(t)
	child := registerSubshell(s, log, calls)

	input := "settings\nrecord inside\nexit\nrecord never\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.True(t, child.Done())
	assert.True(t, s.Done())
	assert.Equal(t, [][]string{{"inside"}}, *calls)
}

func TestSubshellCloseReturnsToParent(t *testing.T) {
	s, log, calls := newTestShell(t)
	child := registerSubshell(s, log, calls)

	input := "settings\nclose\nrecord parent\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.True(t, child.Done())
	assert.Equal(t, [][]string{{"parent"}}, *calls)
}

func TestSubshellUsesOwnPrompt(t *testing.T) {
	s, log, calls := newTestShell(t)
	registerSubshell(s, log, calls)

	input := "settings\nclose\nexit\n"
	require.NoError(t, s.Run(strings.NewReader(input)))

	assert.Contains(t, log.infos, "settings> close")
}

func TestInterruptClosesOnlyInnermostShell(t *testing.T) {
	log := &recordingLogger{}
	ed := &lineedittest.Editor{
		Script: []lineedittest.Response{
			{Line: "settings"},
			{Err: lineedit.ErrInterrupt},
			{Line: "record recovered"},
			{Line: "exit"},
		},
	}

	s := New(ed, log)
	var calls [][]string
	s.MustRegister(&Command{
		Name:    "record",
		Summary: "Records its arguments for the test",
		Params:  []Param{{Name: "text"}},
		Run: func(_ *Shell, args []string) error {
			calls = append(calls, args)
			return nil
		},
	})
	child := registerSubshell(s, log, &calls)

	require.NoError(t, s.Run(nil))

	assert.True(t, child.Done())
	assert.True(t, s.Done())
	assert.Equal(t, [][]string{{"recovered"}}, calls)
}

func TestInterruptOnOutermostShellEndsRun(t *testing.T) {
	log := &recordingLogger{}
	ed := &lineedittest.Editor{
		Script: []lineedittest.Response{
			{Err: lineedit.ErrInterrupt},
		},
	}

	s := New(ed, log)
	require.NoError(t, s.Run(nil))
	assert.True(t, s.Done())
}

func TestClearHistoryWithoutEditor(t *testing.T) {
	s, log, _ := newTestShell(t)

	require.NoError(t, s.Run(strings.NewReader("clear_history\nexit\n")))
	assert.Contains(t, log.infos, "Command completion disabled.")
}

func TestClearHistoryEmptiesEditorBuffer(t *testing.T) {
	log := &recordingLogger{}
	ed := lineedittest.NewEditor("record one", "clear_history", "exit")

	s := New(ed, log)
	s.MustRegister(&Command{
		Name:    "record",
		Summary: "Records its arguments for the test",
		Params:  []Param{{Name: "text"}},
		Run:     func(_ *Shell, _ []string) error { return nil },
	})

	require.NoError(t, s.Run(nil))

	// Entries before the clear are gone; only the exit line entered
	// afterwards remains.
	assert.Equal(t, []string{"exit"}, ed.History())
}

func TestNativeShellAlias(t *testing.T) {
	s, log, _ := newTestShell(t)

	require.NoError(t, s.Run(strings.NewReader("! echo hi there\nexit\n")))
	assert.Contains(t, log.infos, "hi there\n")
}

func TestNativeShellReportsExitCode(t *testing.T) {
	s, log, _ := newTestShell(t)

	require.NoError(t, s.Run(strings.NewReader("native_shell exit 3\nexit\n")))
	assert.Contains(t, log.infos, "Failed to run command exit 3: 3")
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FS_NAME", "shell")

	assert.Equal(t, "hello shell", ExpandEnv("hello $FS_NAME"))
	assert.Equal(t, "hello shell!", ExpandEnv("hello ${FS_NAME}!"))
	assert.Equal(t, "hello $FS_MISSING", ExpandEnv("hello $FS_MISSING"))
	assert.Equal(t, "plain text", ExpandEnv("plain text"))
}
