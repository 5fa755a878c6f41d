// Package validator implements JSON Schema validation for drafts 3 and 4.
// A schema is a parsed JSON document; validation walks it against an
// instance document and returns a structured error record on failure.
package validator

// Draft represents a JSON Schema draft version.
type Draft string

const (
	// Draft3 represents JSON Schema Draft 3.
	Draft3 Draft = "http://json-schema.org/draft-03/schema#"
	// Draft4 represents JSON Schema Draft 4.
	Draft4 Draft = "http://json-schema.org/draft-04/schema#"
)

// A JSONDocument is a valid parsed JSON Document - i.e. the result of json.Unmarshal().
// It is an alias so decoded []any and map[string]any values flow through without
// conversion.
type JSONDocument = any

// A JSONSchema is a valid parsed JSON Document representing a JSON Schema.
// Note that a Compiler must compile the JSONSchema before use which will identify
// invalid regular expressions and similar schema-level problems.
type JSONSchema = JSONDocument

// Validator represents something which can be used to validate a JSON document.
type Validator interface {
	// Validate validates a JSON document. On failure it returns an error record
	// from the taxonomy in errors.go; on success it returns nil.
	Validate(v JSONDocument) error
}

// Compiler defines a JSON Schema compiler. Because JSON schemas can, and often do,
// reference other sub-schemas via the $ref property, a Compiler first must register
// all the JSON Schemas that it will need to compile.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler.
	// Schemas added here are resolvable by id when another schema references them.
	// An error is produced if the JSONSchema cannot be added.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	// An error is produced if the JSONSchema cannot be compiled.
	Compile(id string) (Validator, error)

	// SupportedSchemaVersions returns a slice of Draft representing the supported schema versions.
	SupportedSchemaVersions() []Draft

	// Clear resets the compiler state, removing all registered schemas.
	Clear()
}
