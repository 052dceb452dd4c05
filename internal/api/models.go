package api

// Entity is implemented by every model addressed by an inum.
type Entity interface {
	// EntityInum returns the server-assigned identifier.
	EntityInum() string
	// EntityKind returns the collection the entity belongs to.
	EntityKind() Kind
}

// Kind names an entity collection.
type Kind string

const (
	KindOIDCClient   Kind = "client"
	KindScope        Kind = "scope"
	KindAttribute    Kind = "attribute"
	KindCustomScript Kind = "script"
)

// OIDCClient is a registered OpenID Connect client.
type OIDCClient struct {
	Inum                    string   `json:"inum"`
	DisplayName             string   `json:"displayName,omitempty"`
	Description             string   `json:"description,omitempty"`
	ApplicationType         string   `json:"applicationType,omitempty"`
	SubjectType             string   `json:"subjectType,omitempty"`
	TokenEndpointAuthMethod string   `json:"tokenEndpointAuthMethod,omitempty"`
	RedirectURIs            []string `json:"redirectUris,omitempty"`
	GrantTypes              []string `json:"grantTypes,omitempty"`
	ResponseTypes           []string `json:"responseTypes,omitempty"`
	Scopes                  []string `json:"scopes,omitempty"`
	TrustedClient           bool     `json:"trustedClient,omitempty"`
	Disabled                bool     `json:"disabled"`
}

func (c OIDCClient) EntityInum() string { return c.Inum }
func (c OIDCClient) EntityKind() Kind   { return KindOIDCClient }

// Scope types as reported in Scope.ScopeType.
const (
	ScopeTypeOAuth   = "oauth"
	ScopeTypeOpenID  = "openid"
	ScopeTypeDynamic = "dynamic"
	ScopeTypeUMA     = "uma"
)

// Scope is an OAuth scope definition.
type Scope struct {
	Inum         string   `json:"inum,omitempty"`
	ID           string   `json:"id"`
	DisplayName  string   `json:"displayName,omitempty"`
	Description  string   `json:"description,omitempty"`
	ScopeType    string   `json:"scopeType,omitempty"`
	DefaultScope bool     `json:"defaultScope,omitempty"`
	Claims       []string `json:"claims,omitempty"`
}

func (s Scope) EntityInum() string { return s.Inum }
func (s Scope) EntityKind() Kind   { return KindScope }

// Attribute statuses.
const (
	AttributeStatusActive   = "ACTIVE"
	AttributeStatusInactive = "INACTIVE"
)

// Attribute data types accepted by the server.
var AttributeDataTypes = []string{"STRING", "NUMERIC", "BOOLEAN", "BINARY", "CERTIFICATE", "GENERALIZED_TIME", "JSON"}

// Attribute is a user attribute (claim) definition.
type Attribute struct {
	Inum          string   `json:"inum,omitempty"`
	Name          string   `json:"name"`
	DisplayName   string   `json:"displayName"`
	Description   string   `json:"description,omitempty"`
	DataType      string   `json:"dataType"`
	Status        string   `json:"status"`
	EditType      []string `json:"editType,omitempty"`
	ViewType      []string `json:"viewType,omitempty"`
	ClaimName     string   `json:"claimName,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	MultiValued   bool     `json:"jansMultivaluedAttr,omitempty"`
	Required      bool     `json:"required,omitempty"`
	AdminCanEdit  bool     `json:"adminCanEdit,omitempty"`
	UserCanAccess bool     `json:"userCanAccess,omitempty"`
}

func (a Attribute) EntityInum() string { return a.Inum }
func (a Attribute) EntityKind() Kind   { return KindAttribute }

// CustomScript is a server-side interception script.
type CustomScript struct {
	Inum                string `json:"inum,omitempty"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	ScriptType          string `json:"scriptType"`
	ProgrammingLanguage string `json:"programmingLanguage,omitempty"`
	Level               int    `json:"level"`
	Revision            int    `json:"revision,omitempty"`
	Enabled             bool   `json:"enabled"`
}

func (s CustomScript) EntityInum() string { return s.Inum }
func (s CustomScript) EntityKind() Kind   { return KindCustomScript }

// Logging levels and layouts accepted by the server.
var (
	LoggingLevels  = []string{"TRACE", "DEBUG", "INFO", "ERROR"}
	LoggingLayouts = []string{"text", "json"}
)

// LoggingConfig is the server logging configuration.
type LoggingConfig struct {
	LoggingLevel                string   `json:"loggingLevel"`
	LoggingLayout               string   `json:"loggingLayout"`
	HTTPLoggingEnabled          bool     `json:"httpLoggingEnabled"`
	DisableJdkLogger            bool     `json:"disableJdkLogger"`
	EnabledOAuthAuditLogging    bool     `json:"enabledOAuthAuditLogging"`
	ExternalLoggerConfiguration string   `json:"externalLoggerConfiguration,omitempty"`
	HTTPLoggingExcludePaths     []string `json:"httpLoggingExcludePaths,omitempty"`
}

// ListOptions filters list endpoints. Zero values are omitted.
type ListOptions struct {
	Pattern    string
	Limit      int
	StartIndex int
	// Status filters attributes: "active", "inactive" or "all".
	Status string
}
