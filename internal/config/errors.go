package config

import (
	"fmt"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

type InvalidYAMLError struct {
	Path    string
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not valid YAML: %s", e.Path, e.Wrapped)
}

type InvalidDefaultDraftError struct {
	Value     string
	Supported []validator.Draft
}

func (e *InvalidDefaultDraftError) Error() string {
	return fmt.Sprintf("defaultDraft %q is not supported - supported drafts are: %v", e.Value, e.Supported)
}

type InvalidOutputError struct {
	Value string
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("output %q is not valid - must be 'text' or 'json'", e.Value)
}
