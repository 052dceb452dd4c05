package actions

import "jansctl/internal/api"

// GetOpenIDClients lists OpenID Connect clients.
type GetOpenIDClients struct {
	Query api.ListOptions
}

// GetOpenIDClientsResponse carries the fetched clients.
type GetOpenIDClientsResponse struct {
	Clients []api.OIDCClient
	Result
}

// GetCustomScripts lists custom scripts.
type GetCustomScripts struct {
	Query api.ListOptions
}

// GetCustomScriptsResponse carries the fetched scripts.
type GetCustomScriptsResponse struct {
	Scripts []api.CustomScript
	Result
}

// GetLoggingConfig fetches the server logging configuration.
type GetLoggingConfig struct{}

// GetLoggingConfigResponse carries the fetched configuration.
type GetLoggingConfigResponse struct {
	Config *api.LoggingConfig
	Result
}

// EditLoggingConfig replaces the server logging configuration.
type EditLoggingConfig struct {
	Config api.LoggingConfig
}

// EditLoggingConfigResponse carries the configuration as stored.
type EditLoggingConfigResponse struct {
	Config *api.LoggingConfig
	Result
}

// SetAPIError records the last API error message for display.
type SetAPIError struct {
	Message string
}

// Reset returns every entity container to its initial state. Auth is kept.
type Reset struct{}

// SetItem selects the current item of the entity's container.
type SetItem struct {
	Item api.Entity
}

func (GetOpenIDClients) Type() Type          { return TypeGetOpenIDClients }
func (GetOpenIDClientsResponse) Type() Type  { return TypeGetOpenIDClientsResponse }
func (GetCustomScripts) Type() Type          { return TypeGetCustomScripts }
func (GetCustomScriptsResponse) Type() Type  { return TypeGetCustomScriptsResponse }
func (GetLoggingConfig) Type() Type          { return TypeGetLoggingConfig }
func (GetLoggingConfigResponse) Type() Type  { return TypeGetLoggingConfigResponse }
func (EditLoggingConfig) Type() Type         { return TypeEditLoggingConfig }
func (EditLoggingConfigResponse) Type() Type { return TypeEditLoggingConfigResponse }
func (SetAPIError) Type() Type               { return TypeSetAPIError }
func (Reset) Type() Type                     { return TypeReset }
func (SetItem) Type() Type                   { return TypeSetItem }

func (GetOpenIDClients) isAction()          {}
func (GetOpenIDClientsResponse) isAction()  {}
func (GetCustomScripts) isAction()          {}
func (GetCustomScriptsResponse) isAction()  {}
func (GetLoggingConfig) isAction()          {}
func (GetLoggingConfigResponse) isAction()  {}
func (EditLoggingConfig) isAction()         {}
func (EditLoggingConfigResponse) isAction() {}
func (SetAPIError) isAction()               {}
func (Reset) isAction()                     {}
func (SetItem) isAction()                   {}
