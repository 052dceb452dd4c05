package console

import (
	"context"
	"fmt"
	"strings"

	"jansctl/internal/api"
	"jansctl/internal/formatting"
	"jansctl/internal/views"
)

var (
	listTargets  = []string{"clients", "scopes", "attributes", "scripts"}
	entityTarget = []string{"scope", "attribute"}
)

type listCommand struct{ *env }

func (l *listCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := parseArgs(args, 1, l.Usage())
	if err != nil {
		return err
	}
	kind, err := api.ParseKind(parsed[0])
	if err != nil {
		return err
	}

	var opts api.ListOptions
	if len(parsed) > 1 {
		opts.Pattern = strings.Join(parsed[1:], " ")
	}
	listing, err := l.svc.List(ctx, kind, opts)
	if err != nil {
		return err
	}
	formatting.RenderPretty(l.out(), listing.Table, false)
	return nil
}

func (l *listCommand) Usage() string       { return "list <clients|scopes|attributes|scripts> [pattern]" }
func (l *listCommand) Description() string { return "List a collection" }
func (l *listCommand) Aliases() []string   { return []string{"ls"} }
func (l *listCommand) Completions(input string) []string {
	return completeFrom(input, listTargets)
}

type getCommand struct{ *env }

func (g *getCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := parseArgs(args, 2, g.Usage())
	if err != nil {
		return err
	}
	kind, err := api.ParseKind(parsed[0])
	if err != nil {
		return err
	}
	entity, err := g.svc.Get(ctx, kind, parsed[1])
	if err != nil {
		return err
	}
	formatting.RenderPretty(g.out(), views.Detail(entity, g.svc.State().Auth.Session.Permissions), false)
	return nil
}

func (g *getCommand) Usage() string       { return "get <scope|attribute> <inum>" }
func (g *getCommand) Description() string { return "Show one scope or attribute" }
func (g *getCommand) Aliases() []string   { return []string{"show", "describe"} }
func (g *getCommand) Completions(input string) []string {
	return completeEntity(g.env, input)
}

type deleteCommand struct{ *env }

func (d *deleteCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := parseArgs(args, 2, d.Usage())
	if err != nil {
		return err
	}
	kind, err := api.ParseKind(parsed[0])
	if err != nil {
		return err
	}
	if err := d.svc.Delete(ctx, kind, parsed[1]); err != nil {
		return err
	}
	d.success("Deleted %s %s", kind, parsed[1])
	return nil
}

func (d *deleteCommand) Usage() string       { return "delete <scope|attribute> <inum>" }
func (d *deleteCommand) Description() string { return "Delete one scope or attribute" }
func (d *deleteCommand) Aliases() []string   { return []string{"rm", "del"} }
func (d *deleteCommand) Completions(input string) []string {
	return completeEntity(d.env, input)
}

// completeEntity completes the kind, then the inums already in the store.
func completeEntity(e *env, input string) []string {
	fields := strings.Fields(input)
	typing := !strings.HasSuffix(input, " ")
	argIndex := len(fields) - 1
	if typing {
		argIndex--
	}
	if argIndex <= 0 {
		return completeFrom(input, entityTarget)
	}

	kind, err := api.ParseKind(fields[1])
	if err != nil {
		return nil
	}
	st := e.svc.State()
	var inums []string
	switch kind {
	case api.KindScope:
		for _, s := range st.Scopes.Items {
			inums = append(inums, s.Inum)
		}
	case api.KindAttribute:
		for _, a := range st.Attributes.Items {
			inums = append(inums, a.Inum)
		}
	}
	return completeFrom(input, inums)
}

type reportsCommand struct{ *env }

func (r *reportsCommand) Execute(ctx context.Context, _ []string) error {
	if err := r.svc.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out(), views.RenderReports(views.Reports(r.svc.State()), 0))
	return nil
}

func (r *reportsCommand) Usage() string               { return "reports" }
func (r *reportsCommand) Description() string         { return "Show the summary cards of every readable collection" }
func (r *reportsCommand) Completions(string) []string { return nil }
func (r *reportsCommand) Aliases() []string           { return []string{"stats"} }
