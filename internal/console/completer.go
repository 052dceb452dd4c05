package console

import (
	"github.com/chzyer/readline"
)

// createCompleter builds the tab completer: command names first, then each
// command's own argument completions.
func (r *REPL) createCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range r.registry.AllCompletions() {
		cmd, _ := r.registry.Get(name)
		items = append(items, readline.PcItem(name, readline.PcItemDynamic(cmd.Completions,
			readline.PcItemDynamic(cmd.Completions,
				readline.PcItemDynamic(cmd.Completions)))))
	}
	return readline.NewPrefixCompleter(items...)
}
