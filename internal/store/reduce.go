package store

import (
	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/session"
)

// Reduce returns the state after act. It never mutates s: slices are copied
// before they are changed.
func Reduce(s State, act actions.Action) State {
	switch a := act.(type) {
	case actions.SetAPIError:
		s.APIError = a.Message
	case actions.Reset:
		s = State{Auth: s.Auth}
	case actions.SetItem:
		s = reduceSetItem(s, a)

	case actions.GetOpenIDClients:
		s.OIDC = pending(s.OIDC)
	case actions.GetOpenIDClientsResponse:
		s.OIDC = fetched(s.OIDC, a.Clients, a.Err)

	case actions.GetCustomScripts:
		s.Scripts = pending(s.Scripts)
	case actions.GetCustomScriptsResponse:
		s.Scripts = fetched(s.Scripts, a.Scripts, a.Err)

	case actions.GetLoggingConfig, actions.EditLoggingConfig:
		s.Logging.Loading = true
	case actions.GetLoggingConfigResponse:
		s.Logging = reduceLogging(s.Logging, a.Config, a.Err)
	case actions.EditLoggingConfigResponse:
		s.Logging = reduceLogging(s.Logging, a.Config, a.Err)

	default:
		if next, ok := reduceScopes(s, act); ok {
			return next
		}
		if next, ok := reduceAttributes(s, act); ok {
			return next
		}
		if next, ok := reduceAuth(s, act); ok {
			return next
		}
	}
	return s
}

func reduceScopes(s State, act actions.Action) (State, bool) {
	switch a := act.(type) {
	case actions.GetScopes, actions.GetScopeByInum, actions.DeleteScope:
		s.Scopes = pending(s.Scopes)
	case actions.GetScopesResponse:
		s.Scopes = fetched(s.Scopes, a.Scopes, a.Err)
	case actions.GetScopeByInumResponse:
		s.Scopes = selected(s.Scopes, a.Scope, a.Err)
	case actions.DeleteScopeResponse:
		s.Scopes = deleted(s.Scopes, a.Inum, a.Err, api.Scope.EntityInum)
	default:
		return s, false
	}
	return s, true
}

func reduceAttributes(s State, act actions.Action) (State, bool) {
	switch a := act.(type) {
	case actions.GetAttributes, actions.GetAttributeByInum, actions.AddAttribute,
		actions.EditAttribute, actions.DeleteAttribute:
		s.Attributes = pending(s.Attributes)
	case actions.GetAttributesResponse:
		s.Attributes = fetched(s.Attributes, a.Attributes, a.Err)
	case actions.GetAttributeByInumResponse:
		s.Attributes = selected(s.Attributes, a.Attribute, a.Err)
	case actions.AddAttributeResponse:
		s.Attributes = upserted(s.Attributes, a.Attribute, a.Err, api.Attribute.EntityInum)
	case actions.EditAttributeResponse:
		s.Attributes = upserted(s.Attributes, a.Attribute, a.Err, api.Attribute.EntityInum)
	case actions.DeleteAttributeResponse:
		s.Attributes = deleted(s.Attributes, a.Inum, a.Err, api.Attribute.EntityInum)
	default:
		return s, false
	}
	return s, true
}

func reduceAuth(s State, act actions.Action) (State, bool) {
	auth := s.Auth
	switch a := act.(type) {
	case actions.GetOAuth2Config:
		if a.Issuer != "" {
			auth.Session.Issuer = a.Issuer
		}
	case actions.GetOAuth2ConfigResponse:
		if a.Err != nil {
			auth.Err = a.Err
			break
		}
		auth.Metadata = a.Metadata
		auth.Err = nil
	case actions.GetOAuth2AccessToken:
		auth.Phase = PhaseAuthorizing
	case actions.GetOAuth2AccessTokenResponse:
		if a.Err != nil {
			auth.Phase, auth.Err = PhaseFailed, a.Err
			break
		}
		auth.OAuth2AccessToken = a.AccessToken
		if !a.IDToken.IsEmpty() {
			auth.Session.IdentityToken = a.IDToken
		}
		auth.Err = nil
	case actions.UserinfoRequest:
		auth.Phase = PhaseAuthorizing
	case actions.UserinfoResponse:
		if a.Err != nil {
			auth.Phase, auth.Err = PhaseFailed, a.Err
			break
		}
		auth.Session.IdentityToken = a.IdentityToken
		auth.Session.User = a.User
		auth.Err = nil
	case actions.GetAPIAccessToken:
		if auth.Session.IsAuthenticated() {
			auth.Phase = PhaseRefreshing
		} else {
			auth.Phase = PhaseAuthorizing
		}
		if !a.IdentityToken.IsEmpty() {
			auth.Session.IdentityToken = a.IdentityToken
		}
	case actions.GetAPIAccessTokenResponse:
		if a.Err != nil {
			auth.Phase, auth.Err = PhaseFailed, a.Err
			break
		}
		auth.Session.AccessToken = a.AccessToken
		auth.Session.AccessTokenExpiry = a.ExpiresAt
		auth.Session.Permissions = session.NewPermissions(a.Scopes...)
		auth.Phase, auth.Err = PhaseAuthorized, nil
	default:
		return s, false
	}
	s.Auth = auth
	return s, true
}

func reduceSetItem(s State, a actions.SetItem) State {
	switch item := a.Item.(type) {
	case api.OIDCClient:
		s.OIDC.Item = &item
	case *api.OIDCClient:
		s.OIDC.Item = copyPtr(item)
	case api.Scope:
		s.Scopes.Item = &item
	case *api.Scope:
		s.Scopes.Item = copyPtr(item)
	case api.Attribute:
		s.Attributes.Item = &item
	case *api.Attribute:
		s.Attributes.Item = copyPtr(item)
	case api.CustomScript:
		s.Scripts.Item = &item
	case *api.CustomScript:
		s.Scripts.Item = copyPtr(item)
	}
	return s
}

func reduceLogging(l LoggingState, cfg *api.LoggingConfig, err error) LoggingState {
	l.Loading = false
	if err != nil {
		l.Err = err
		return l
	}
	l.Config = copyPtr(cfg)
	l.Err = nil
	return l
}

func pending[T any](c Collection[T]) Collection[T] {
	c.Loading = true
	return c
}

// fetched replaces the items on success and keeps them on failure.
func fetched[T any](c Collection[T], items []T, err error) Collection[T] {
	c.Loading = false
	if err != nil {
		c.Err = err
		return c
	}
	c.Items = append([]T(nil), items...)
	if c.Items == nil {
		c.Items = []T{}
	}
	c.Err = nil
	return c
}

func selected[T any](c Collection[T], item *T, err error) Collection[T] {
	c.Loading = false
	if err != nil {
		c.Err = err
		return c
	}
	c.Item = copyPtr(item)
	c.Err = nil
	return c
}

// upserted replaces the item with the same inum, or appends it.
func upserted[T any](c Collection[T], item *T, err error, inum func(T) string) Collection[T] {
	c.Loading = false
	if err != nil {
		c.Err = err
		return c
	}
	c.Err = nil
	if item == nil {
		return c
	}

	items := make([]T, 0, len(c.Items)+1)
	replaced := false
	for _, existing := range c.Items {
		if inum(existing) == inum(*item) {
			items = append(items, *item)
			replaced = true
			continue
		}
		items = append(items, existing)
	}
	if !replaced {
		items = append(items, *item)
	}
	c.Items = items
	c.Item = copyPtr(item)
	return c
}

// deleted drops the item with the given inum from Items and Item.
func deleted[T any](c Collection[T], id string, err error, inum func(T) string) Collection[T] {
	c.Loading = false
	if err != nil {
		c.Err = err
		return c
	}
	c.Err = nil

	items := make([]T, 0, len(c.Items))
	for _, existing := range c.Items {
		if inum(existing) != id {
			items = append(items, existing)
		}
	}
	c.Items = items
	if c.Item != nil && inum(*c.Item) == id {
		c.Item = nil
	}
	return c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
