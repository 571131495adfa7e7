package core

import "strings"

// Bind validates a parsed parameter list against a command's declared
// arity and shapes it into the argument list passed to the handler.
//
// When more tokens arrive than the command declares, and it declares at
// least one parameter, the surplus folds into the final argument: the last
// declared parameter absorbs the trailing tokens re-joined with single
// spaces, on the assumption that it holds free-form text such as a shell
// command string. Commands declaring no parameters reject any tokens
// outright. No type coercion happens here; every bound argument stays a
// string.
func Bind(cmd *Command, params []string) ([]string, error) {
	total := cmd.TotalParams()
	required := cmd.RequiredParams()

	if total == 0 && len(params) != 0 {
		return nil, &ArityError{
			Kind:    TooManyParams,
			Command: cmd.Name,
			Given:   len(params),
		}
	}
	if len(params) < required {
		return nil, &ArityError{
			Kind:     TooFewParams,
			Command:  cmd.Name,
			Required: required,
			Given:    len(params),
		}
	}

	if len(params) > total {
		out := make([]string, 0, total)
		out = append(out, params[:total-1]...)
		out = append(out, strings.Join(params[total-1:], " "))
		return out, nil
	}

	return params, nil
}
