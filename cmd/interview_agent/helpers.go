package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/schemas"
)

// resolveAPIKey returns the Gemini API key from the flag value or the
// GEMINI_API_KEY environment variable.
func resolveAPIKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return apiKey, nil
}

// resolveSpeechKey returns the speech API key from the flag value or the
// SPEECH_API_KEY / OPENAI_API_KEY environment variables.
func resolveSpeechKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("SPEECH_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("speech API key is required (set SPEECH_API_KEY environment variable or use --speech-api-key flag)")
	}
	return apiKey, nil
}

// loadJobText reads the job posting either from a local file or by fetching
// a URL. Exactly one of jobPath and jobURL must be non-empty.
func loadJobText(ctx context.Context, jobPath, jobURL string, useBrowser bool) (string, error) {
	if jobPath != "" && jobURL != "" {
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if jobPath == "" && jobURL == "" {
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}

	if jobPath != "" {
		text, err := ingestion.ExtractFromFile(jobPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job posting: %w", err)
		}
		return text, nil
	}

	opts := ingestion.DefaultFetchOptions()
	opts.UseBrowser = useBrowser
	text, err := ingestion.FetchJobPosting(ctx, jobURL, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return text, nil
}

// writeJSONFile marshals v with indentation and writes it to path, then
// validates the result against the named schema when the schema file can be
// located. Validation failures are fatal; schema loading problems only warn.
func writeJSONFile(v any, path, schemaFile string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	schemaPath := schemas.ResolveSchemaPath("schemas/" + schemaFile)
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			var validationErr *schemas.ValidationError
			var schemaLoadErr *schemas.SchemaLoadError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("generated JSON does not validate against schema: %w", err)
			} else if errors.As(err, &schemaLoadErr) {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	return nil
}

// readJSONFile reads path and unmarshals it into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// newLLMClient creates a Gemini client with the default model configuration.
func newLLMClient(ctx context.Context, apiKey string) (llm.Client, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
