package core

import (
	"errors"
	"os/exec"
)

const closeHelp = "If the current shell is a sub-shell spawned by another " +
	"friendly shell instance, control will return to the parent shell " +
	"which will continue running"

// registerBuiltins installs the vocabulary every friendly shell carries.
func registerBuiltins(r *Registry) {
	r.MustRegister(&Command{
		Name:    "exit",
		Summary: "Terminates the command interpreter",
		Run: func(s *Shell, _ []string) error {
			s.Exit()
			return nil
		},
	})

	r.MustRegister(&Command{
		Name:    "close",
		Summary: "Terminates the currently running shell",
		Help:    closeHelp,
		Run: func(s *Shell, _ []string) error {
			s.Close()
			return nil
		},
	})

	r.MustRegister(&Command{
		Name:    "native_shell",
		Summary: "Executes a shell command within the friendly shell environment",
		Alias:   "!",
		Params:  []Param{{Name: "cmd"}},
		Run:     nativeShell,
	})

	r.MustRegister(&Command{
		Name:    "clear_history",
		Summary: "Clears the history of previously used commands from this shell",
		Run: func(s *Shell, _ []string) error {
			if s.editor == nil {
				s.log.Info("Command completion disabled.")
				return nil
			}
			// Only the in-memory buffer is cleared here. The history file
			// is rewritten from the buffer when the shell's scope exits.
			s.editor.ClearHistory()
			return nil
		},
	})

	r.MustRegister(&Command{
		Name:    "help",
		Summary: "Displays a summary of supported commands",
		Params:  []Param{{Name: "command", Optional: true}},
		Run:     helpCommand,
	})
}

// nativeShell passes its entire argument through to the operating system's
// command interpreter and reports the combined output.
func nativeShell(s *Shell, args []string) error {
	cmd := args[0]
	s.log.Debug("Running shell command %s", cmd)

	output, err := RunNativeCommand(cmd)
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		s.log.Info("Failed to run command %s: %d", cmd, exitErr.ExitCode())
		s.log.Info("%s", output)
	case err != nil:
		return err
	default:
		s.log.Info("%s", output)
	}
	return nil
}

func helpCommand(s *Shell, args []string) error {
	if len(args) > 0 {
		cmd, err := s.registry.Resolve(args[0])
		if err != nil {
			s.log.Error("Command not found: %s", args[0])
			return nil
		}
		s.log.Info("%s", renderCommandHelp(cmd))
		return nil
	}

	s.log.Info("%s", renderHelp(s.registry))
	return nil
}
