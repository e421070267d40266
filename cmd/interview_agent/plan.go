package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/plan"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an interview question plan from a fit profile",
	Long:  "Read a FitProfile JSON produced by 'analyze' and generate a tailored interview plan that validates against the interview_plan schema.",
	RunE:  runPlan,
}

var (
	planFitFile    string
	planOutputFile string
	planQuestions  int
	planStyle      string
	planAPIKey     string
	planVerbose    bool
)

func init() {
	planCmd.Flags().StringVarP(&planFitFile, "fit", "f", "", "Path to fit profile JSON file (required)")
	planCmd.Flags().StringVarP(&planOutputFile, "out", "o", "interview_plan.json", "Path to output JSON file")
	planCmd.Flags().IntVarP(&planQuestions, "questions", "q", 0, "Number of questions to generate (default 8)")
	planCmd.Flags().StringVarP(&planStyle, "style", "s", "", "Interviewer style, e.g. \"bienveillant\" or \"exigeant\"")
	planCmd.Flags().StringVar(&planAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Print the resulting plan to stdout")

	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	if planFitFile == "" {
		return fmt.Errorf("--fit is required")
	}
	if planQuestions < 0 {
		return fmt.Errorf("--questions must be non-negative")
	}

	apiKey, err := resolveAPIKey(planAPIKey)
	if err != nil {
		return err
	}

	var fit types.FitProfile
	if err := readJSONFile(planFitFile, &fit); err != nil {
		return err
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	interviewPlan, err := plan.Generate(ctx, client, &fit, planStyle, planQuestions)
	if err != nil {
		return fmt.Errorf("failed to generate interview plan: %w", err)
	}

	if err := writeJSONFile(interviewPlan, planOutputFile, "interview_plan.schema.json"); err != nil {
		return err
	}

	if planVerbose {
		observability.NewPrinter(os.Stdout).PrintPlan(interviewPlan)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully generated interview plan (%d questions)\n", len(interviewPlan))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", planOutputFile)

	return nil
}
