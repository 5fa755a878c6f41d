package schema

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

// ReadDocument reads and parses a JSON document from disk.
func ReadDocument(path string) (validator.JSONDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	var doc validator.JSONDocument
	if uErr := json.Unmarshal(data, &doc); uErr != nil {
		return nil, InvalidJSONError{Path: path, Wrapped: uErr}
	}
	return doc, nil
}

// ReadSchema reads and parses a schema file, and reports the draft declared by
// its $schema property.
func ReadSchema(path string) (validator.JSONSchema, validator.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &NotFoundError{Path: path}
		}
		return nil, "", err
	}

	var doc validator.JSONSchema
	if uErr := json.Unmarshal(data, &doc); uErr != nil {
		return nil, "", InvalidJSONSchemaError{Path: path, Wrapped: uErr}
	}

	return doc, DetectDraft(data), nil
}

// DetectDraft reads the $schema declaration from raw schema bytes. It returns
// the empty Draft when the schema declares nothing recognisable, leaving the
// caller to apply its configured default.
func DetectDraft(data []byte) validator.Draft {
	switch gjson.GetBytes(data, "$schema").String() {
	case string(validator.Draft3):
		return validator.Draft3
	case string(validator.Draft4):
		return validator.Draft4
	}
	return ""
}
