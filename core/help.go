package core

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

// renderHelp formats the summary table shown by the bare help command:
// one row per command, aliases in parentheses, sorted by name.
func renderHelp(r *Registry) string {
	cmds := r.Commands()
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})

	buf := &bytes.Buffer{}
	tw := tabwriter.NewWriter(buf, 8, 8, 4, ' ', 0)
	for _, cmd := range cmds {
		name := cmd.Name
		if cmd.Alias != "" {
			name = fmt.Sprintf("%s (%s)", cmd.Name, cmd.Alias)
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, cmd.Summary)
	}
	tw.Flush()

	return strings.TrimRight(buf.String(), "\n")
}

// renderCommandHelp formats the extended help for one command.
func renderCommandHelp(cmd *Command) string {
	var b strings.Builder

	b.WriteString("usage: ")
	b.WriteString(cmd.Name)
	for _, p := range cmd.Params {
		if p.Optional {
			fmt.Fprintf(&b, " [%s]", strings.ToUpper(p.Name))
		} else {
			fmt.Fprintf(&b, " %s", strings.ToUpper(p.Name))
		}
	}

	if cmd.Summary != "" {
		b.WriteString("\n\n")
		b.WriteString(cmd.Summary)
	}
	if cmd.Help != "" {
		b.WriteString("\n\n")
		b.WriteString(cmd.Help)
	}
	if cmd.Alias != "" {
		b.WriteString("\n\nAliases: ")
		b.WriteString(cmd.Alias)
	}

	return b.String()
}
