package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"jansctl/internal/views"
)

var loggingSetKeys = []string{"level=", "layout=", "http-logging=", "disable-jdk-logger=", "audit-logging="}

type loggingCommand struct{ *env }

func (l *loggingCommand) Execute(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}

	switch sub {
	case "show", "get":
		if _, err := l.svc.Logging(ctx); err != nil {
			return err
		}
		l.println("%s", views.NewLoggingPage(l.svc.State()).Render())
		return nil

	case "set":
		form, err := parseLoggingForm(args[1:])
		if err != nil {
			return err
		}
		cfg, err := l.svc.SetLogging(ctx, form)
		if err != nil {
			return err
		}
		l.success("Saved logging configuration (level %s, layout %s)", cfg.LoggingLevel, cfg.LoggingLayout)
		return nil

	default:
		return fmt.Errorf("usage: %s", l.Usage())
	}
}

// parseLoggingForm reads key=value pairs into a form.
func parseLoggingForm(args []string) (views.LoggingForm, error) {
	var form views.LoggingForm
	if len(args) == 0 {
		return form, fmt.Errorf("nothing to set; use %s", strings.Join(loggingSetKeys, "<value> "))
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return form, fmt.Errorf("invalid argument %q, expected key=value", arg)
		}

		switch strings.ToLower(key) {
		case "level":
			form.Level = value
		case "layout":
			form.Layout = value
		case "http-logging", "disable-jdk-logger", "audit-logging":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return form, fmt.Errorf("invalid value for %s: %q", key, value)
			}
			switch strings.ToLower(key) {
			case "http-logging":
				form.HTTPLogging = &b
			case "disable-jdk-logger":
				form.DisableJdkLogger = &b
			default:
				form.AuditLogging = &b
			}
		default:
			return form, fmt.Errorf("unknown setting %q", key)
		}
	}
	return form, nil
}

func (l *loggingCommand) Usage() string {
	return "logging [show | set key=value ...]"
}

func (l *loggingCommand) Description() string {
	return "Show or change the server logging configuration"
}

func (l *loggingCommand) Aliases() []string { return []string{"log"} }

func (l *loggingCommand) Completions(input string) []string {
	fields := strings.Fields(input)
	if len(fields) >= 2 && (len(fields) > 2 || strings.HasSuffix(input, " ")) && fields[1] == "set" {
		return completeFrom(input, loggingSetKeys)
	}
	return completeFrom(input, []string{"show", "set"})
}
