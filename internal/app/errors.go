package app

import (
	"fmt"
)

type NoSchemaError struct{}

func (e *NoSchemaError) Error() string {
	return "a schema must be provided with --schema"
}

type NoDocumentsError struct{}

func (e *NoDocumentsError) Error() string {
	return "at least one document to validate must be provided"
}

type ValidationFailedError struct {
	Failed int
}

func (e *ValidationFailedError) Error() string {
	if e.Failed == 1 {
		return "1 document failed validation"
	}
	return fmt.Sprintf("%d documents failed validation", e.Failed)
}
