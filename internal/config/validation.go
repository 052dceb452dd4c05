package config

import (
	"fmt"
	"net/url"
	"strings"

	"jansctl/internal/cli"
	"jansctl/pkg/oauth"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "no validation errors"
	case 1:
		return ve[0].Error()
	}
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{Field: field, Value: val, Message: message})
}

// ValidateURL checks that value is an absolute http(s) URL. Empty values
// pass; use ValidateRequired for mandatory fields.
func ValidateURL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return ValidationError{Field: field, Value: value, Message: "must be an absolute http or https URL"}
	}
	return nil
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Value: value, Message: "is required"}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Validate checks cfg and collects every problem.
func (c Config) Validate() error {
	var errs ValidationErrors
	collect := func(err error) {
		if ve, ok := err.(ValidationError); ok {
			errs = append(errs, ve)
		}
	}

	collect(ValidateURL("server", c.Server))
	collect(ValidateURL("issuer", c.Issuer))

	grants := make([]string, 0, len(oauth.Grants()))
	for _, g := range oauth.Grants() {
		grants = append(grants, string(g))
	}
	if c.Grant != "" {
		collect(ValidateOneOf("grant", c.Grant, grants))
	}
	if c.Grant == string(oauth.GrantDex) {
		collect(ValidateRequired("dex-connector", c.DexConnector))
	}

	if c.Output != "" {
		formats := make([]string, len(cli.ValidOutputFormats))
		for i, f := range cli.ValidOutputFormats {
			formats[i] = string(f)
		}
		collect(ValidateOneOf("output", c.Output, formats))
	}
	if c.CallbackPort < 0 || c.CallbackPort > 65535 {
		errs.Add("callback-port", "must be between 0 and 65535", c.CallbackPort)
	}
	if c.Timeout < 0 {
		errs.Add("timeout", "must not be negative", c.Timeout)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
