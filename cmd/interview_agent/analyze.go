package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/profile"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build a skills-gap profile from a CV and a job posting",
	Long:  "Extract structured profiles from a CV file and a job posting (file or URL), compute skill overlaps and gaps, and write a FitProfile JSON that validates against the fit_profile schema.",
	RunE:  runAnalyze,
}

var (
	analyzeCV         string
	analyzeJob        string
	analyzeJobURL     string
	analyzeOutputFile string
	analyzeAPIKey     string
	analyzeUseBrowser bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCV, "cv", "", "Path to CV file (.pdf or .txt) (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "fit_profile.json", "Path to output JSON file")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the resulting profile to stdout")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeCV == "" {
		return fmt.Errorf("--cv is required")
	}

	apiKey, err := resolveAPIKey(analyzeAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()

	cvText, err := ingestion.ExtractFromFile(analyzeCV)
	if err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}

	jobText, err := loadJobText(ctx, analyzeJob, analyzeJobURL, analyzeUseBrowser)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	fit, err := profile.Build(ctx, client, cvText, jobText)
	if err != nil {
		return fmt.Errorf("failed to build fit profile: %w", err)
	}

	if err := writeJSONFile(fit, analyzeOutputFile, "fit_profile.schema.json"); err != nil {
		return err
	}

	if analyzeVerbose {
		observability.NewPrinter(os.Stdout).PrintFitProfile(fit)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully built fit profile\n")
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", analyzeOutputFile)

	return nil
}
