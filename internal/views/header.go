package views

import (
	"fmt"
	"strings"

	"jansctl/internal/store"
)

// Header renders the session line shown above the dashboard: server, user,
// auth phase and the last API error.
func Header(s store.State) string {
	sess := s.Auth.Session

	user := "anonymous"
	if sess.User != nil {
		user = sess.User.DisplayName()
	}

	phase := string(s.Auth.Phase)
	switch s.Auth.Phase {
	case store.PhaseAuthorized:
		phase = okStyle.Render(phase)
	case store.PhaseFailed:
		phase = errorStyle.Render(phase)
	default:
		phase = mutedStyle.Render(phase)
	}

	parts := []string{
		titleStyle.Render("jansctl"),
		sess.Server,
		user,
		phase,
		mutedStyle.Render(fmt.Sprintf("%d scopes", sess.Permissions.Len())),
	}
	line := strings.Join(parts, mutedStyle.Render(" · "))

	if s.Auth.Err != nil {
		line += "\n" + errorStyle.Render("auth: "+s.Auth.Err.Error())
	}
	if s.APIError != "" {
		line += "\n" + errorStyle.Render(s.APIError)
	}
	return line
}
