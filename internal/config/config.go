package config

import (
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

const ConfigFile = ".jsv.yml"

const DefaultConfigContent = `# JSON Schema Validator Configuration

# DEFAULT JSON SCHEMA DRAFT
#
# Schemas without a $schema declaration are validated with this draft.
# Supported drafts:
# - http://json-schema.org/draft-03/schema#
# - http://json-schema.org/draft-04/schema# (Default)
defaultDraft: "http://json-schema.org/draft-04/schema#"

# SCHEMA BASE DIRECTORY
#
# Relative $ref URIs in schemas are resolved against this directory.
# Defaults to the directory containing the schema file.
schemaBaseDir: ""

# OUTPUT FORMAT
#
# Either "text" or "json".
output: text
`

// Config holds the validator CLI configuration, read from .jsv.yml in the
// working directory when present.
type Config struct {
	DefaultDraft  validator.Draft `yaml:"defaultDraft"`
	SchemaBaseDir string          `yaml:"schemaBaseDir"`
	Output        string          `yaml:"output"`
}

// New reads the configuration file from dir. A missing file yields the default
// configuration; an unreadable or invalid one is an error.
func New(dir string, compiler validator.Compiler) (*Config, error) {
	config := &Config{}

	configPath := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if uErr := yaml.Unmarshal(data, config); uErr != nil {
			return nil, &InvalidYAMLError{Path: configPath, Wrapped: uErr}
		}
	}

	if vErr := config.Validate(compiler); vErr != nil {
		return nil, vErr
	}
	return config, nil
}

func (c *Config) Validate(compiler validator.Compiler) error {
	if c.DefaultDraft == "" {
		c.DefaultDraft = validator.Draft4
	}

	supported := compiler.SupportedSchemaVersions()
	if !slices.Contains(supported, c.DefaultDraft) {
		return &InvalidDefaultDraftError{
			Value:     string(c.DefaultDraft),
			Supported: supported,
		}
	}

	if c.Output == "" {
		c.Output = "text"
	}
	if c.Output != "text" && c.Output != "json" {
		return &InvalidOutputError{Value: c.Output}
	}

	return nil
}
