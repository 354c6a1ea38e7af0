package repl

import (
	"sort"
	"strings"
)

var builtins = []string{"exit", "quit", "history", "help"}

// Completer suggests commands for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over commands plus the shell builtins.
func NewCompleter(commands []string) *Completer {
	all := append(append([]string(nil), commands...), builtins...)
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.TrimLeft(prefix, " ")
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
