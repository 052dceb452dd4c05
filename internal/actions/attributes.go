package actions

import "jansctl/internal/api"

// GetAttributes lists attributes.
type GetAttributes struct {
	Query api.ListOptions
}

// GetAttributesResponse carries the fetched attributes.
type GetAttributesResponse struct {
	Attributes []api.Attribute
	Result
}

// AddAttribute creates an attribute.
type AddAttribute struct {
	Attribute api.Attribute
}

// AddAttributeResponse carries the attribute as stored by the server.
type AddAttributeResponse struct {
	Attribute *api.Attribute
	Result
}

// EditAttribute replaces an attribute.
type EditAttribute struct {
	Attribute api.Attribute
}

// EditAttributeResponse carries the attribute as stored by the server.
type EditAttributeResponse struct {
	Attribute *api.Attribute
	Result
}

// GetAttributeByInum fetches one attribute.
type GetAttributeByInum struct {
	Inum string
}

// GetAttributeByInumResponse carries the fetched attribute.
type GetAttributeByInumResponse struct {
	Attribute *api.Attribute
	Result
}

// DeleteAttribute deletes one attribute.
type DeleteAttribute struct {
	Inum string
}

// DeleteAttributeResponse carries the deleted inum; empty when rejected.
type DeleteAttributeResponse struct {
	Inum string
	Result
}

func (GetAttributes) Type() Type              { return TypeGetAttributes }
func (GetAttributesResponse) Type() Type      { return TypeGetAttributesResponse }
func (AddAttribute) Type() Type               { return TypeAddAttribute }
func (AddAttributeResponse) Type() Type       { return TypeAddAttributeResponse }
func (EditAttribute) Type() Type              { return TypeEditAttribute }
func (EditAttributeResponse) Type() Type      { return TypeEditAttributeResponse }
func (GetAttributeByInum) Type() Type         { return TypeGetAttributeByInum }
func (GetAttributeByInumResponse) Type() Type { return TypeGetAttributeByInumResponse }
func (DeleteAttribute) Type() Type            { return TypeDeleteAttribute }
func (DeleteAttributeResponse) Type() Type    { return TypeDeleteAttributeResponse }

func (GetAttributes) isAction()              {}
func (GetAttributesResponse) isAction()      {}
func (AddAttribute) isAction()               {}
func (AddAttributeResponse) isAction()       {}
func (EditAttribute) isAction()              {}
func (EditAttributeResponse) isAction()      {}
func (GetAttributeByInum) isAction()         {}
func (GetAttributeByInumResponse) isAction() {}
func (DeleteAttribute) isAction()            {}
func (DeleteAttributeResponse) isAction()    {}
