package actions

import "jansctl/internal/api"

// GetScopes lists scopes.
type GetScopes struct {
	Query api.ListOptions
}

// GetScopesResponse carries the fetched scopes.
type GetScopesResponse struct {
	Scopes []api.Scope
	Result
}

// GetScopeByInum fetches one scope.
type GetScopeByInum struct {
	Inum string
}

// GetScopeByInumResponse carries the fetched scope.
type GetScopeByInumResponse struct {
	Scope *api.Scope
	Result
}

// DeleteScope deletes one scope.
type DeleteScope struct {
	Inum string
}

// DeleteScopeResponse carries the deleted inum; empty when rejected.
type DeleteScopeResponse struct {
	Inum string
	Result
}

func (GetScopes) Type() Type              { return TypeGetScopes }
func (GetScopesResponse) Type() Type      { return TypeGetScopesResponse }
func (GetScopeByInum) Type() Type         { return TypeGetScopeByInum }
func (GetScopeByInumResponse) Type() Type { return TypeGetScopeByInumResponse }
func (DeleteScope) Type() Type            { return TypeDeleteScope }
func (DeleteScopeResponse) Type() Type    { return TypeDeleteScopeResponse }

func (GetScopes) isAction()              {}
func (GetScopesResponse) isAction()      {}
func (GetScopeByInum) isAction()         {}
func (GetScopeByInumResponse) isAction() {}
func (DeleteScope) isAction()            {}
func (DeleteScopeResponse) isAction()    {}
