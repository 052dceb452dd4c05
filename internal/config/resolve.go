package config

import (
	"os"

	"jansctl/internal/cli"
	jansctx "jansctl/internal/context"
	"jansctl/pkg/logging"
)

// Settings is the effective configuration of one invocation.
type Settings struct {
	Config

	// ContextName is the context that contributed, if any.
	ContextName string
	// IdentityToken is taken from JANSCTL_ID_TOKEN or the token file.
	IdentityToken string
}

// Resolve layers, lowest first: cfg (file over defaults), the active
// context, the environment, then flags. contexts may be nil.
func Resolve(cfg Config, contexts *jansctx.Storage, flags cli.CommandFlags) (Settings, error) {
	s := Settings{Config: cfg}

	if contexts != nil {
		ctx, err := contexts.Resolve(flags.Context)
		if err != nil {
			return Settings{}, err
		}
		if ctx != nil {
			logging.Debug("Config", "Using context %s", ctx.Name)
			s.ContextName = ctx.Name
			s.Server = ctx.Server
			s.Issuer = ctx.Issuer
			if ctx.Settings != nil {
				if ctx.Settings.Output != "" {
					s.Output = ctx.Settings.Output
				}
				if ctx.Settings.ClientID != "" {
					s.ClientID = ctx.Settings.ClientID
				}
			}
		}
	}

	if env := os.Getenv(cli.ServerEnvVar); env != "" {
		s.Server = env
		s.Issuer = cfg.Issuer
	}
	s.IdentityToken = cli.EnvIdentityToken()

	if flags.Server != "" {
		s.Server = flags.Server
		s.Issuer = cfg.Issuer
	}
	if flags.OutputFormat != "" {
		s.Output = flags.OutputFormat
	}
	if flags.TokenFile != "" {
		s.TokenFile = flags.TokenFile
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
