package core

import (
	"errors"
	"fmt"
)

// Param declares one positional parameter of a command. Optional
// parameters have a default on the handler side and may be omitted by the
// user; they must follow all required parameters.
type Param struct {
	Name     string
	Optional bool
}

// CompleteFunc produces completion candidates for one parameter of a
// command. It receives the parameters parsed from the partially entered
// line, the index of the parameter under the cursor and the length of the
// partially typed token, and returns full-text candidates. It may return
// an empty list but never needs to fail: errors inside completion are
// swallowed so the prompt stays intact.
type CompleteFunc func(params []string, index int, tokenLen int) []string

// Handler executes a resolved command with its bound arguments. All
// arguments are strings; handlers do their own parsing.
type Handler func(s *Shell, args []string) error

// Command describes one entry in a shell's vocabulary.
type Command struct {
	// Name the command is invoked by.
	Name string
	// Summary is the one line description shown in the help listing.
	Summary string
	// Help is the extended help text shown by "help <name>".
	Help string
	// Alias is an optional shorthand token substitutable for Name.
	Alias string
	// Params declares the positional parameters in left-to-right order.
	Params []Param
	// Complete, when set, supplies parameter completion candidates.
	Complete CompleteFunc
	// Run is the handler invoked with bound arguments.
	Run Handler
}

// RequiredParams counts the declared parameters without defaults.
func (c *Command) RequiredParams() int {
	n := 0
	for _, p := range c.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// TotalParams counts all declared parameters.
func (c *Command) TotalParams() int {
	return len(c.Params)
}

// Registry maps command names to their handlers. It is built explicitly at
// construction time; there is no runtime method discovery.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
	order    []string
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry. Malformed declarations and
// duplicate names are rejected.
func (r *Registry) Register(cmd *Command) error {
	switch {
	case cmd == nil || cmd.Name == "":
		return errors.New("command must have a name")
	case cmd.Run == nil:
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}
	if _, ok := r.commands[cmd.Name]; ok {
		return fmt.Errorf("command %s already registered", cmd.Name)
	}

	seenOptional := false
	for _, p := range cmd.Params {
		if p.Optional {
			seenOptional = true
		} else if seenOptional {
			return fmt.Errorf("command %s declares required parameter %s after an optional one", cmd.Name, p.Name)
		}
	}

	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
	if cmd.Alias != "" {
		if err := r.RegisterAlias(cmd.Alias, cmd.Name); err != nil {
			delete(r.commands, cmd.Name)
			r.order = r.order[:len(r.order)-1]
			return err
		}
	}
	return nil
}

// MustRegister is Register for static command tables.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// RegisterAlias maps a shorthand token onto a command name. The target is
// resolved lazily, so an alias may be registered before its command.
func (r *Registry) RegisterAlias(alias, target string) error {
	if alias == "" || target == "" {
		return errors.New("alias and target must be non-empty")
	}
	if _, ok := r.aliases[alias]; ok {
		return fmt.Errorf("alias %s already registered", alias)
	}

	r.aliases[alias] = target
	return nil
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Resolve finds the command bound to name, following alias indirection.
// Aliases re-enter resolution with their target name so an aliased
// invocation gets identical arity checks and dispatch. Dangling or cyclic
// aliases resolve to NotFoundError; the recursion is bounded by the number
// of registered aliases.
func (r *Registry) Resolve(name string) (*Command, error) {
	return r.resolve(name, len(r.aliases))
}

func (r *Registry) resolve(name string, depth int) (*Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	if depth <= 0 {
		return nil, &NotFoundError{Command: name}
	}
	if target, ok := r.aliases[name]; ok {
		return r.resolve(target, depth-1)
	}
	return nil, &NotFoundError{Command: name}
}
