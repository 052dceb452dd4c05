// Package console is the interactive admin console: a readline loop over a
// registry of commands. Each command dispatches actions through an
// admin.Service, waits for the effect runner and renders the result with
// the views.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"jansctl/internal/admin"
	"jansctl/internal/cli"
	"jansctl/internal/store"
	"jansctl/pkg/logging"
)

const (
	promptPrefixUnicode  = "𝗷"
	promptPrefixASCII    = "j"
	promptChevronUnicode = "»"
	promptChevronASCII   = ">"
)

// StateAuthRequired is shown in the prompt while no usable API token is
// held.
const StateAuthRequired = "[AUTH REQUIRED]"

// maxContextNameLength is the longest context name shown in the prompt.
const maxContextNameLength = 28

// commandExecutionTimeout bounds a single command, including any token
// request it triggers.
const commandExecutionTimeout = 2 * time.Minute

// historyFileName is created under the jansctl config directory.
const historyFileName = "console_history"

var errExit = errors.New("exit")

// REPL is the interactive console.
type REPL struct {
	svc         *admin.Service
	registry    *Registry
	rl          *readline.Instance
	out         io.Writer
	historyFile string
	useUnicode  bool

	mu             sync.RWMutex
	currentContext string
}

// Option configures a REPL.
type Option func(*REPL)

// WithOutput writes command output to w instead of the terminal.
func WithOutput(w io.Writer) Option {
	return func(r *REPL) { r.out = w }
}

// WithContextName shows name in the prompt.
func WithContextName(name string) Option {
	return func(r *REPL) { r.currentContext = name }
}

// WithHistoryFile persists history to path. An empty path disables history.
func WithHistoryFile(path string) Option {
	return func(r *REPL) { r.historyFile = path }
}

// New creates a console over svc with every built-in command registered.
func New(svc *admin.Service, opts ...Option) *REPL {
	r := &REPL{
		svc:         svc,
		registry:    NewRegistry(),
		historyFile: defaultHistoryFile(),
		useUnicode:  detectUnicodeSupport(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerCommands()
	return r
}

// Registry returns the command registry.
func (r *REPL) Registry() *Registry {
	return r.registry
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".jansctl_"+historyFileName)
	}
	return filepath.Join(home, ".config", "jansctl", historyFileName)
}

// detectUnicodeSupport reports whether the terminal likely renders unicode.
func detectUnicodeSupport() bool {
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	for _, v := range []string{os.Getenv("LANG"), os.Getenv("LC_ALL")} {
		v = strings.ToLower(v)
		if strings.Contains(v, "utf-8") || strings.Contains(v, "utf8") {
			return true
		}
	}
	termLower := strings.ToLower(term)
	for _, ut := range []string{"xterm", "screen", "tmux", "alacritty", "kitty", "iterm"} {
		if strings.Contains(termLower, ut) {
			return true
		}
	}
	return true
}

func (r *REPL) registerCommands() {
	e := &env{svc: r.svc, repl: r}
	r.registry.Register("help", &helpCommand{env: e, registry: r.registry})
	r.registry.Register("exit", &exitCommand{env: e})
	r.registry.Register("list", &listCommand{env: e})
	r.registry.Register("get", &getCommand{env: e})
	r.registry.Register("delete", &deleteCommand{env: e})
	r.registry.Register("logging", &loggingCommand{env: e})
	r.registry.Register("reports", &reportsCommand{env: e})
	r.registry.Register("refresh", &refreshCommand{env: e})
	r.registry.Register("token", &tokenCommand{env: e})
	r.registry.Register("whoami", &whoamiCommand{env: e})
}

// output returns where command output goes.
func (r *REPL) output() io.Writer {
	if r.out != nil {
		return r.out
	}
	if r.rl != nil {
		return r.rl.Stdout()
	}
	return os.Stdout
}

// buildPrompt renders "<prefix> [context] [AUTH REQUIRED] <chevron> ".
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	ctx := r.currentContext
	useUnicode := r.useUnicode
	r.mu.RUnlock()

	prefix, chevron := promptPrefixASCII, promptChevronASCII
	if useUnicode {
		prefix, chevron = promptPrefixUnicode, promptChevronUnicode
	}

	parts := []string{prefix}
	if ctx != "" {
		parts = append(parts, truncateContextName(ctx))
	}
	if authRequired(r.svc.State()) {
		parts = append(parts, StateAuthRequired)
	}
	parts = append(parts, chevron)
	return strings.Join(parts, " ") + " "
}

func authRequired(s store.State) bool {
	return !s.Auth.Session.IsAuthenticated() || s.Auth.Phase == store.PhaseFailed
}

// truncateContextName keeps the start and the end of long names.
// Example: "production-us-east-1-cluster" becomes "production-...cluster"
func truncateContextName(name string) string {
	if len(name) <= maxContextNameLength {
		return name
	}
	ellipsis := "..."
	available := maxContextNameLength - len(ellipsis)
	startLen := (available * 3) / 5
	endLen := available - startLen
	return name[:startLen] + ellipsis + name[len(name)-endLen:]
}

func (r *REPL) updatePrompt() {
	if r.rl != nil {
		r.rl.SetPrompt(r.buildPrompt())
	}
}

// executeCommand parses input and runs the matching command.
func (r *REPL) executeCommand(ctx context.Context, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	name := strings.ToLower(parts[0])
	command, exists := r.registry.Get(name)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	commandCtx, cancel := context.WithTimeout(ctx, commandExecutionTimeout)
	defer cancel()
	logging.Debug("Console", "Executing %s", name)
	return command.Execute(commandCtx, parts[1:])
}

// Run reads and executes commands until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	config := &readline.Config{
		Prompt:          r.buildPrompt(),
		HistoryFile:     r.historyFile,
		AutoComplete:    r.createCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}
	if r.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(r.historyFile), 0o700); err != nil {
			logging.Debug("Console", "History disabled: %v", err)
			config.HistoryFile = ""
		}
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	out := r.output()
	fmt.Fprintln(out, "jansctl console. Type 'help' for available commands. Use TAB for completion.")
	if authRequired(r.svc.State()) {
		fmt.Fprintln(out, "No API access token. Run 'token' or restart after 'jansctl auth login'.")
	}
	fmt.Fprintln(out)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := r.executeCommand(ctx, input); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return nil
			}
			fmt.Fprintln(out, cli.FormatError(err))
		}

		r.updatePrompt()
		fmt.Fprintln(out)
	}
}

// filterInput blocks Ctrl+Z.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
