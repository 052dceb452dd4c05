package admin

import (
	"context"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/internal/views"
)

// Logging fetches the server logging configuration.
func (s *Service) Logging(ctx context.Context) (*api.LoggingConfig, error) {
	const op = "read logging configuration"
	if err := s.authorize(op, session.LoggingRead); err != nil {
		return nil, err
	}
	resp, err := s.request(ctx, actions.GetLoggingConfig{}, op)
	if err != nil {
		return nil, err
	}
	return resp.(actions.GetLoggingConfigResponse).Config, nil
}

// SetLogging applies form on top of the server's current configuration.
func (s *Service) SetLogging(ctx context.Context, form views.LoggingForm) (*api.LoggingConfig, error) {
	const op = "save logging configuration"
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(op, session.LoggingWrite); err != nil {
		return nil, err
	}

	current := s.store.State().Logging.Config
	if current == nil {
		cfg, err := s.Logging(ctx)
		if err != nil {
			return nil, err
		}
		current = cfg
	}

	edit, err := form.Submit(*current)
	if err != nil {
		return nil, err
	}
	resp, err := s.request(ctx, edit, op)
	if err != nil {
		return nil, err
	}
	return resp.(actions.EditLoggingConfigResponse).Config, nil
}
