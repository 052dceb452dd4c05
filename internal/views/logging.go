package views

import (
	"fmt"
	"strings"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/internal/store"
)

// LoggingPage is the server logging configuration screen.
type LoggingPage struct {
	Config  *api.LoggingConfig
	Loading bool
	Err     error

	CanRead  bool
	CanWrite bool
}

// NewLoggingPage builds the page from the state.
func NewLoggingPage(s store.State) LoggingPage {
	perms := s.Auth.Session.Permissions
	return LoggingPage{
		Config:   s.Logging.Config,
		Loading:  s.Logging.Loading,
		Err:      s.Logging.Err,
		CanRead:  perms.Has(session.LoggingRead),
		CanWrite: perms.Has(session.LoggingWrite),
	}
}

// Controls returns the controls rendered on the page.
func (p LoggingPage) Controls() []string {
	if !p.CanRead || !p.CanWrite {
		return nil
	}
	return []string{"save"}
}

// Render draws the page.
func (p LoggingPage) Render() string {
	if !p.CanRead {
		return panelStyle.Render(titleStyle.Render("Logging") + "\n" +
			mutedStyle.Render(fmt.Sprintf("Viewing logging settings requires the %s scope.", session.LoggingRead.Short())))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Logging"))
	b.WriteString("\n")

	switch {
	case p.Config == nil && p.Err != nil:
		b.WriteString(errorStyle.Render("Failed to load logging settings: " + p.Err.Error()))
		return panelStyle.Render(b.String())
	case p.Config == nil:
		b.WriteString(mutedStyle.Render("Loading…"))
		return panelStyle.Render(b.String())
	}

	cfg := p.Config
	fields := [][2]string{
		{"Log level", choice(cfg.LoggingLevel, api.LoggingLevels)},
		{"Log layout", choice(cfg.LoggingLayout, api.LoggingLayouts)},
		{"HTTP logging", onOff(cfg.HTTPLoggingEnabled)},
		{"Disable JDK logger", onOff(cfg.DisableJdkLogger)},
		{"OAuth audit logging", onOff(cfg.EnabledOAuthAuditLogging)},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%-20s %s\n", f[0], f[1])
	}

	if p.Err != nil {
		b.WriteString(errorStyle.Render(p.Err.Error()))
		b.WriteString("\n")
	}
	if p.Loading {
		b.WriteString(mutedStyle.Render("Saving…"))
		b.WriteString("\n")
	}
	for _, c := range p.Controls() {
		b.WriteString(buttonStyle.Render(strings.ToUpper(c[:1]) + c[1:]))
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// choice renders value among the allowed options, marking the selected one.
func choice(value string, options []string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if strings.EqualFold(o, value) {
			parts[i] = okStyle.Render("(•) " + o)
		} else {
			parts[i] = mutedStyle.Render("( ) " + o)
		}
	}
	return strings.Join(parts, "  ")
}

func onOff(v bool) string {
	if v {
		return okStyle.Render("on")
	}
	return mutedStyle.Render("off")
}

// LoggingForm holds the edits of the logging page. Nil fields keep the
// current value.
type LoggingForm struct {
	Level  string
	Layout string

	HTTPLogging      *bool
	DisableJdkLogger *bool
	AuditLogging     *bool
}

// Validate checks level and layout against the values the server accepts.
func (f LoggingForm) Validate() error {
	if f.Level != "" && !contains(api.LoggingLevels, strings.ToUpper(f.Level)) {
		return fmt.Errorf("invalid log level %q (valid: %s)", f.Level, strings.Join(api.LoggingLevels, ", "))
	}
	if f.Layout != "" && !contains(api.LoggingLayouts, strings.ToLower(f.Layout)) {
		return fmt.Errorf("invalid log layout %q (valid: %s)", f.Layout, strings.Join(api.LoggingLayouts, ", "))
	}
	return nil
}

// Submit merges the form into current and returns the edit request.
func (f LoggingForm) Submit(current api.LoggingConfig) (actions.EditLoggingConfig, error) {
	if err := f.Validate(); err != nil {
		return actions.EditLoggingConfig{}, err
	}

	next := current
	if f.Level != "" {
		next.LoggingLevel = strings.ToUpper(f.Level)
	}
	if f.Layout != "" {
		next.LoggingLayout = strings.ToLower(f.Layout)
	}
	if f.HTTPLogging != nil {
		next.HTTPLoggingEnabled = *f.HTTPLogging
	}
	if f.DisableJdkLogger != nil {
		next.DisableJdkLogger = *f.DisableJdkLogger
	}
	if f.AuditLogging != nil {
		next.EnabledOAuthAuditLogging = *f.AuditLogging
	}
	next.HTTPLoggingExcludePaths = append([]string(nil), current.HTTPLoggingExcludePaths...)
	return actions.EditLoggingConfig{Config: next}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
