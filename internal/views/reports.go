package views

import (
	"fmt"
	"strings"

	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/internal/store"

	"github.com/charmbracelet/lipgloss"
)

// Card is one counter tile of the reports dashboard.
type Card struct {
	Title string
	Total int
	// Label names the subset counted in Count, e.g. "enabled".
	Label string
	Count int

	Loading bool
	Err     error
	// Denied is set when the session cannot read the collection.
	Denied bool
}

// Reports builds the four cards from the state: clients (enabled),
// attributes (active), scopes (oauth type) and scripts (enabled).
func Reports(s store.State) []Card {
	perms := s.Auth.Session.Permissions

	clients := Card{Title: "OpenID Connect Clients", Label: "enabled", Total: len(s.OIDC.Items)}
	for _, c := range s.OIDC.Items {
		if !c.Disabled {
			clients.Count++
		}
	}
	gate(&clients, perms, session.ClientsRead, s.OIDC.Loading, s.OIDC.Err)

	attrs := Card{Title: "Attributes", Label: "active", Total: len(s.Attributes.Items)}
	for _, a := range s.Attributes.Items {
		if a.Status == api.AttributeStatusActive {
			attrs.Count++
		}
	}
	gate(&attrs, perms, session.AttributesRead, s.Attributes.Loading, s.Attributes.Err)

	scopes := Card{Title: "Scopes", Label: "oauth", Total: len(s.Scopes.Items)}
	for _, sc := range s.Scopes.Items {
		if sc.ScopeType == api.ScopeTypeOAuth {
			scopes.Count++
		}
	}
	gate(&scopes, perms, session.ScopesRead, s.Scopes.Loading, s.Scopes.Err)

	scripts := Card{Title: "Custom Scripts", Label: "enabled", Total: len(s.Scripts.Items)}
	for _, sc := range s.Scripts.Items {
		if sc.Enabled {
			scripts.Count++
		}
	}
	gate(&scripts, perms, session.ScriptsRead, s.Scripts.Loading, s.Scripts.Err)

	return []Card{clients, attrs, scopes, scripts}
}

func gate(c *Card, perms session.Permissions, read session.Capability, loading bool, err error) {
	c.Denied = !perms.Has(read)
	c.Loading = loading
	c.Err = err
}

// Render draws the card.
func (c Card) Render() string {
	var body string
	switch {
	case c.Denied:
		body = mutedStyle.Render("no access")
	case c.Err != nil && c.Total == 0:
		body = errorStyle.Render("unavailable")
	default:
		body = fmt.Sprintf("%s total\n%s %s",
			numberStyle.Render(fmt.Sprint(c.Total)),
			okStyle.Render(fmt.Sprint(c.Count)),
			c.Label)
		if c.Loading {
			body += mutedStyle.Render(" …")
		}
	}
	return cardStyle.Render(titleStyle.Render(c.Title) + "\n" + body)
}

// RenderReports lays the cards out side by side, wrapping to width. A
// width of zero keeps them on one row.
func RenderReports(cards []Card, width int) string {
	if len(cards) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range cards {
		rendered := c.Render()
		w := lipgloss.Width(rendered)
		if width > 0 && len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, rendered)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return strings.Join(rows, "\n")
}
