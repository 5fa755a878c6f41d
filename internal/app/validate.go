package app

import (
	"github.com/spf13/cobra"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var continueOnError bool
	var draft3 bool
	var watch bool
	var schemaPath string
	var baseDir string

	cmd := &cobra.Command{
		Use:   "validate -s <schema> <document>...",
		Short: "Validate one or more JSON documents against a schema",
		Args:  cobra.MinimumNArgs(1),
		Example: `
VALIDATING DOCUMENTS
  jsv validate -s person.schema.json person.json
  jsv validate -s person.schema.json one.json two.json three.json

EXTERNAL REFERENCES
Schemas may reference other schema files with relative $ref URIs. These
resolve against the schema's directory by default:
  jsv validate -s schemas/order.schema.json order.json
  jsv validate -s order.schema.json --base-dir ./schemas order.json

DRAFT 3 SCHEMAS
Schemas declaring draft 3 in $schema are handled automatically. Force
draft 3 required semantics for undeclared schemas:
  jsv validate -s legacy.schema.json --draft3 doc.json

WATCH MODE
Revalidate whenever the schema or a document changes:
  jsv validate -s person.schema.json -w person.json`,
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path of the JSON Schema to validate against")
	_ = cmd.MarkFlagRequired("schema")

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show structured error records for failing documents")
	outputVal := formatValue("")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&continueOnError, "continue-on-error", "C", false,
		"Continue validating remaining documents after a failure (default is to stop on first failure)")
	cmd.Flags().BoolVar(&draft3, "draft3", false, "Use draft 3 required semantics")
	cmd.Flags().StringVarP(&baseDir, "base-dir", "b", "", "Base directory for resolving relative $ref URIs")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and revalidate")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")

		params := ValidateParams{
			SchemaPath:      schemaPath,
			DocPaths:        args,
			Verbose:         verbose,
			Format:          string(outputVal),
			UseColour:       !noColour,
			ContinueOnError: continueOnError,
			Draft3:          draft3,
			BaseDir:         baseDir,
		}

		if watch {
			return mgr.WatchValidation(cmd.Context(), params, nil)
		}
		return mgr.ValidateDocuments(cmd.Context(), params)
	}

	return cmd
}
