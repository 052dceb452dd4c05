package effects

import (
	"context"
	"errors"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/pkg/logging"
)

func registerHandlers(r *Runner, deps Deps) {
	r.Handle(actions.TypeGetOpenIDClients, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		items, err := c.ListOpenIDClients(ctx, act.(actions.GetOpenIDClients).Query)
		return actions.GetOpenIDClientsResponse{Clients: items}, err
	}, func(err error) actions.Action {
		return actions.GetOpenIDClientsResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeGetScopes, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		items, err := c.ListScopes(ctx, act.(actions.GetScopes).Query)
		return actions.GetScopesResponse{Scopes: items}, err
	}, func(err error) actions.Action {
		return actions.GetScopesResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeGetScopeByInum, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		scope, err := c.GetScope(ctx, act.(actions.GetScopeByInum).Inum)
		return actions.GetScopeByInumResponse{Scope: scope}, err
	}, func(err error) actions.Action {
		return actions.GetScopeByInumResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeDeleteScope, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		inum := act.(actions.DeleteScope).Inum
		return actions.DeleteScopeResponse{Inum: inum}, c.DeleteScope(ctx, inum)
	}, func(err error) actions.Action {
		return actions.DeleteScopeResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeGetAttributes, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		items, err := c.ListAttributes(ctx, act.(actions.GetAttributes).Query)
		return actions.GetAttributesResponse{Attributes: items}, err
	}, func(err error) actions.Action {
		return actions.GetAttributesResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeGetAttributeByInum, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		attr, err := c.GetAttribute(ctx, act.(actions.GetAttributeByInum).Inum)
		return actions.GetAttributeByInumResponse{Attribute: attr}, err
	}, func(err error) actions.Action {
		return actions.GetAttributeByInumResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeAddAttribute, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		attr, err := c.AddAttribute(ctx, act.(actions.AddAttribute).Attribute)
		return actions.AddAttributeResponse{Attribute: attr}, err
	}, func(err error) actions.Action {
		return actions.AddAttributeResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeEditAttribute, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		attr, err := c.EditAttribute(ctx, act.(actions.EditAttribute).Attribute)
		return actions.EditAttributeResponse{Attribute: attr}, err
	}, func(err error) actions.Action {
		return actions.EditAttributeResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeDeleteAttribute, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		inum := act.(actions.DeleteAttribute).Inum
		return actions.DeleteAttributeResponse{Inum: inum}, c.DeleteAttribute(ctx, inum)
	}, func(err error) actions.Action {
		return actions.DeleteAttributeResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeGetCustomScripts, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		items, err := c.ListCustomScripts(ctx, act.(actions.GetCustomScripts).Query)
		return actions.GetCustomScriptsResponse{Scripts: items}, err
	}, func(err error) actions.Action {
		return actions.GetCustomScriptsResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeGetLoggingConfig, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		cfg, err := c.GetLoggingConfig(ctx)
		return actions.GetLoggingConfigResponse{Config: cfg}, err
	}, func(err error) actions.Action {
		return actions.GetLoggingConfigResponse{Result: actions.Fail(err)}
	}))

	r.Handle(actions.TypeEditLoggingConfig, apiHandler(deps, func(ctx context.Context, c API, act actions.Action) (actions.Action, error) {
		cfg, err := c.EditLoggingConfig(ctx, act.(actions.EditLoggingConfig).Config)
		return actions.EditLoggingConfigResponse{Config: cfg}, err
	}, func(err error) actions.Action {
		return actions.EditLoggingConfigResponse{Result: actions.Fail(err)}
	}))

	a := &authHandlers{deps: deps}
	r.Handle(actions.TypeGetOAuth2Config, a.getOAuth2Config)
	r.Handle(actions.TypeGetOAuth2AccessToken, a.getOAuth2AccessToken)
	r.Handle(actions.TypeUserinfoRequest, a.userinfo)
	r.Handle(actions.TypeGetAPIAccessToken, a.getAPIAccessToken)
}

// apiCall performs the request and returns the fulfilled response.
type apiCall func(ctx context.Context, c API, act actions.Action) (actions.Action, error)

// apiHandler wraps an apiCall with the shared failure path: dispatch the
// rejected response, then, on 401, one token request with the stored
// identity token.
func apiHandler(deps Deps, call apiCall, rejected func(error) actions.Action) Handler {
	return func(t *Task, act actions.Action) {
		if deps.NewClient == nil {
			t.Put(rejected(errors.New("no API client configured")))
			return
		}
		client, err := deps.NewClient(t.Auth.Session)
		if err != nil {
			t.Put(rejected(err))
			return
		}

		resp, err := call(t.Ctx, client, act)
		if err == nil {
			t.Put(resp)
			return
		}

		if errors.Is(err, context.Canceled) && t.Ctx.Err() != nil {
			logging.Debug("Effects", "%s cancelled", act.Type())
			return
		}

		logging.Warn("Effects", "%s failed: %v", act.Type(), err)
		t.Put(rejected(err))

		if api.IsUnauthorized(err) {
			logging.Info("Effects", "%s was unauthorized, requesting a new API access token", act.Type())
			t.Put(actions.GetAPIAccessToken{IdentityToken: t.Auth.Session.IdentityToken})
		}
	}
}
