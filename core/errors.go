package core

import (
	"errors"
	"fmt"
)

// ErrInterrupt may be returned by a command handler when the user cancels
// the operation mid-flight. The loop prints a separator line so the next
// prompt lands below any partial output, then continues.
var ErrInterrupt = errors.New("operation interrupted")

// NotFoundError reports a command name with no registered handler or
// alias.
type NotFoundError struct {
	Command string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Command not found: %s", e.Command)
}

// ArityKind distinguishes the ways a parameter list can mismatch a
// command's declaration.
type ArityKind int

const (
	// TooFewParams means required parameters were left unfilled.
	TooFewParams ArityKind = iota
	// TooManyParams means tokens were given to a command that declares no
	// parameters.
	TooManyParams
)

// ArityError reports a parameter list that cannot be bound to a command.
// The handler is never invoked when binding fails.
type ArityError struct {
	Kind     ArityKind
	Command  string
	Required int
	Given    int
}

func (e *ArityError) Error() string {
	if e.Kind == TooManyParams {
		return fmt.Sprintf("Command %s accepts no parameters but %d provided.", e.Command, e.Given)
	}
	return fmt.Sprintf("Command %s requires %d parameters but %d provided.", e.Command, e.Required, e.Given)
}
