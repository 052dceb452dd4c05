package console

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"jansctl/internal/admin"
	"jansctl/internal/cli"
	"jansctl/internal/session"
	"jansctl/internal/views"
)

// env is shared by the built-in commands.
type env struct {
	svc  *admin.Service
	repl *REPL
}

func (e *env) out() io.Writer {
	return e.repl.output()
}

func (e *env) println(format string, args ...interface{}) {
	fmt.Fprintf(e.out(), format+"\n", args...)
}

func (e *env) success(format string, args ...interface{}) {
	fmt.Fprintln(e.out(), cli.FormatSuccess(fmt.Sprintf(format, args...)))
}

// parseArgs checks that at least minArgs arguments were given.
func parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// completeFrom returns the candidates that start with the word being typed.
func completeFrom(input string, candidates []string) []string {
	fields := strings.Fields(input)
	partial := ""
	if len(fields) > 0 && !strings.HasSuffix(input, " ") {
		partial = fields[len(fields)-1]
	}
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			out = append(out, c)
		}
	}
	return out
}

type helpCommand struct {
	*env
	registry *Registry
}

func (h *helpCommand) Execute(_ context.Context, args []string) error {
	if len(args) > 0 {
		name := strings.ToLower(args[0])
		cmd, ok := h.registry.Get(name)
		if !ok {
			return fmt.Errorf("unknown command: %s. Use 'help' to see all available commands", name)
		}
		h.println("Usage: %s", cmd.Usage())
		h.println("  %s", cmd.Description())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			h.println("  Aliases: %s", strings.Join(aliases, ", "))
		}
		return nil
	}

	h.println("Available commands:")
	for _, name := range h.registry.List() {
		cmd, _ := h.registry.Get(name)
		h.println("  %-40s - %s", cmd.Usage(), cmd.Description())
	}
	h.println("")
	h.println("Keyboard shortcuts:")
	h.println("  %-40s - %s", "TAB", "Auto-complete commands and arguments")
	h.println("  %-40s - %s", "Ctrl+R", "Search command history")
	h.println("  %-40s - %s", "Ctrl+D", "Exit the console")
	return nil
}

func (h *helpCommand) Usage() string       { return "help [command]" }
func (h *helpCommand) Description() string { return "Show available commands or help for one command" }
func (h *helpCommand) Aliases() []string   { return []string{"?", "h"} }
func (h *helpCommand) Completions(input string) []string {
	return completeFrom(input, h.registry.List())
}

type exitCommand struct{ *env }

func (e *exitCommand) Execute(context.Context, []string) error { return errExit }
func (e *exitCommand) Usage() string                           { return "exit" }
func (e *exitCommand) Description() string                     { return "Exit the console" }
func (e *exitCommand) Completions(string) []string             { return nil }
func (e *exitCommand) Aliases() []string                       { return []string{"quit", "q"} }

type whoamiCommand struct{ *env }

func (w *whoamiCommand) Execute(context.Context, []string) error {
	st := w.svc.State()
	w.println("%s", views.Header(st))

	perms := st.Auth.Session.Permissions.List()
	if len(perms) == 0 {
		w.println("No scopes granted.")
		return nil
	}
	short := make([]string, len(perms))
	for i, p := range perms {
		short[i] = session.Capability(p).Short()
	}
	sort.Strings(short)
	w.println("Granted scopes:")
	for _, s := range short {
		w.println("  %s", s)
	}
	return nil
}

func (w *whoamiCommand) Usage() string               { return "whoami" }
func (w *whoamiCommand) Description() string         { return "Show the user, auth state and granted scopes" }
func (w *whoamiCommand) Completions(string) []string { return nil }
func (w *whoamiCommand) Aliases() []string           { return []string{"me"} }

type refreshCommand struct{ *env }

func (r *refreshCommand) Execute(ctx context.Context, _ []string) error {
	if err := r.svc.Refresh(ctx); err != nil {
		return err
	}
	r.success("Refreshed")
	return nil
}

func (r *refreshCommand) Usage() string               { return "refresh" }
func (r *refreshCommand) Description() string         { return "Re-fetch every collection the session can read" }
func (r *refreshCommand) Completions(string) []string { return nil }
func (r *refreshCommand) Aliases() []string           { return []string{"reload"} }

type tokenCommand struct{ *env }

func (t *tokenCommand) Execute(ctx context.Context, _ []string) error {
	if err := t.svc.RenewToken(ctx); err != nil {
		return err
	}
	t.success("Obtained a new API access token (%d scopes)", t.svc.State().Auth.Session.Permissions.Len())
	return nil
}

func (t *tokenCommand) Usage() string               { return "token" }
func (t *tokenCommand) Description() string         { return "Request a new API access token with the identity token" }
func (t *tokenCommand) Completions(string) []string { return nil }
func (t *tokenCommand) Aliases() []string           { return []string{"renew"} }
