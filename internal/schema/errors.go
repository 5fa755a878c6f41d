package schema

import (
	"fmt"
)

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema not found: %s", e.Path)
}

type InvalidJSONError struct {
	Path    string
	Wrapped error
}

func (e InvalidJSONError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %s", e.Path, e.Wrapped)
}

type InvalidJSONSchemaError struct {
	Path    string
	Wrapped error
}

func (e InvalidJSONSchemaError) Error() string {
	return fmt.Sprintf("%s is not a valid JSON Schema: %s", e.Path, e.Wrapped)
}
