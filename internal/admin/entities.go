package admin

import (
	"context"
	"fmt"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/formatting"
	"jansctl/internal/views"
)

// Listing is the result of List: the raw items for structured output and
// the table for terminal output.
type Listing struct {
	Kind  api.Kind
	Items interface{}
	Table formatting.Table
	Count int
}

// List fetches the collection of kind.
func (s *Service) List(ctx context.Context, kind api.Kind, opts api.ListOptions) (Listing, error) {
	op := readOperation(kind)
	if err := s.authorize(op, views.ReadCapability(kind)); err != nil {
		return Listing{}, err
	}

	var act actions.Action
	switch kind {
	case api.KindOIDCClient:
		act = actions.GetOpenIDClients{Query: opts}
	case api.KindScope:
		act = actions.GetScopes{Query: opts}
	case api.KindAttribute:
		act = actions.GetAttributes{Query: opts}
	case api.KindCustomScript:
		act = actions.GetCustomScripts{Query: opts}
	default:
		return Listing{}, fmt.Errorf("cannot list %q", kind)
	}

	if _, err := s.request(ctx, act, op); err != nil {
		return Listing{}, err
	}

	st := s.store.State()
	perms := st.Auth.Session.Permissions
	l := Listing{Kind: kind}
	switch kind {
	case api.KindOIDCClient:
		l.Items, l.Count, l.Table = st.OIDC.Items, len(st.OIDC.Items), views.ClientsTable(st.OIDC.Items)
	case api.KindScope:
		l.Items, l.Count, l.Table = st.Scopes.Items, len(st.Scopes.Items), views.ScopesTable(st.Scopes.Items, perms)
	case api.KindAttribute:
		l.Items, l.Count, l.Table = st.Attributes.Items, len(st.Attributes.Items), views.AttributesTable(st.Attributes.Items, perms)
	case api.KindCustomScript:
		l.Items, l.Count, l.Table = st.Scripts.Items, len(st.Scripts.Items), views.ScriptsTable(st.Scripts.Items)
	}
	return l, nil
}

// Get fetches one scope or attribute by inum.
func (s *Service) Get(ctx context.Context, kind api.Kind, inum string) (api.Entity, error) {
	op := "get " + string(kind)
	if inum == "" {
		return nil, fmt.Errorf("%s: inum is required", op)
	}
	if err := s.authorize(op, views.ReadCapability(kind)); err != nil {
		return nil, err
	}

	switch kind {
	case api.KindScope:
		resp, err := s.request(ctx, actions.GetScopeByInum{Inum: inum}, op)
		if err != nil {
			return nil, err
		}
		if sc := resp.(actions.GetScopeByInumResponse).Scope; sc != nil {
			return *sc, nil
		}
	case api.KindAttribute:
		resp, err := s.request(ctx, actions.GetAttributeByInum{Inum: inum}, op)
		if err != nil {
			return nil, err
		}
		if a := resp.(actions.GetAttributeByInumResponse).Attribute; a != nil {
			return *a, nil
		}
	default:
		return nil, fmt.Errorf("get is supported for scopes and attributes, not %s", kind.Plural())
	}
	return nil, fmt.Errorf("%s %s not found", kind, inum)
}

// Delete removes one scope or attribute.
func (s *Service) Delete(ctx context.Context, kind api.Kind, inum string) error {
	op := "delete " + string(kind)
	if inum == "" {
		return fmt.Errorf("%s: inum is required", op)
	}

	var act actions.Action
	switch kind {
	case api.KindScope:
		act = actions.DeleteScope{Inum: inum}
	case api.KindAttribute:
		act = actions.DeleteAttribute{Inum: inum}
	default:
		return fmt.Errorf("delete is supported for scopes and attributes, not %s", kind.Plural())
	}

	if err := s.authorize(op, controlCapability(kind, "delete")); err != nil {
		return err
	}
	_, err := s.request(ctx, act, op)
	return err
}

// AddAttribute creates attr and returns it as stored.
func (s *Service) AddAttribute(ctx context.Context, attr api.Attribute) (*api.Attribute, error) {
	const op = "add attribute"
	if err := s.authorize(op, controlCapability(api.KindAttribute, "add")); err != nil {
		return nil, err
	}
	resp, err := s.request(ctx, actions.AddAttribute{Attribute: attr}, op)
	if err != nil {
		return nil, err
	}
	return resp.(actions.AddAttributeResponse).Attribute, nil
}

// EditAttribute replaces attr and returns it as stored.
func (s *Service) EditAttribute(ctx context.Context, attr api.Attribute) (*api.Attribute, error) {
	const op = "edit attribute"
	if attr.Inum == "" {
		return nil, fmt.Errorf("%s: inum is required", op)
	}
	if err := s.authorize(op, controlCapability(api.KindAttribute, "edit")); err != nil {
		return nil, err
	}
	resp, err := s.request(ctx, actions.EditAttribute{Attribute: attr}, op)
	if err != nil {
		return nil, err
	}
	return resp.(actions.EditAttributeResponse).Attribute, nil
}
