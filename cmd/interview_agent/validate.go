package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an artifact JSON file against its schema",
	Long:  "Validate a generated artifact (fit profile, interview plan or history) against the matching JSON schema. Useful for checking hand-edited files before feeding them back into the pipeline.",
	RunE:  runValidate,
}

var (
	validateFile   string
	validateSchema string
)

// artifactSchemas maps the --schema shorthand names to schema files.
var artifactSchemas = map[string]string{
	"fit_profile":    "fit_profile.schema.json",
	"interview_plan": "interview_plan.schema.json",
	"history":        "history.schema.json",
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Path to JSON file to validate (required)")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema to validate against: fit_profile, interview_plan or history (required)")

	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	schemaFile, ok := artifactSchemas[validateSchema]
	if !ok {
		return fmt.Errorf("unknown schema %q (expected fit_profile, interview_plan or history)", validateSchema)
	}

	schemaPath := schemas.ResolveSchemaPath("schemas/" + schemaFile)
	if schemaPath == "" {
		return fmt.Errorf("could not locate schema file %s", schemaFile)
	}

	if err := schemas.ValidateJSON(schemaPath, validateFile); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s does not validate against %s schema: %w", validateFile, validateSchema, err)
		}
		return fmt.Errorf("failed to validate: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s is a valid %s\n", validateFile, validateSchema)
	return nil
}
