package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/report"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a final coaching report from a session history",
	Long:  "Read a history JSON produced by 'interview', compute aggregate statistics and generate a narrative coaching report with strengths, weaknesses and preparation advice.",
	RunE:  runReport,
}

var (
	reportHistoryFile string
	reportSessionFile string
	reportOutputFile  string
	reportAPIKey      string
	reportVerbose     bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportHistoryFile, "history", "i", "", "Path to history JSON file (mutually exclusive with --session)")
	reportCmd.Flags().StringVar(&reportSessionFile, "session", "", "Path to a persisted session JSON file (mutually exclusive with --history)")
	reportCmd.Flags().StringVarP(&reportOutputFile, "out", "o", "report.md", "Path to output report file")
	reportCmd.Flags().StringVar(&reportAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print aggregate statistics to stdout")

	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	if reportHistoryFile != "" && reportSessionFile != "" {
		return fmt.Errorf("--history and --session are mutually exclusive; provide only one")
	}
	if reportHistoryFile == "" && reportSessionFile == "" {
		return fmt.Errorf("either --history or --session is required")
	}

	apiKey, err := resolveAPIKey(reportAPIKey)
	if err != nil {
		return err
	}

	var history types.History
	source := reportHistoryFile
	if reportSessionFile != "" {
		source = reportSessionFile
		var sess session.Session
		if err := readJSONFile(reportSessionFile, &sess); err != nil {
			return err
		}
		history = sess.History
	} else {
		if err := readJSONFile(reportHistoryFile, &history); err != nil {
			return err
		}
	}
	if len(history) == 0 {
		return fmt.Errorf("history %s contains no answered questions", source)
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	reportText, err := report.GenerateFinalReport(ctx, client, history)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if err := os.WriteFile(reportOutputFile, []byte(reportText), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if reportVerbose {
		observability.NewPrinter(os.Stdout).PrintStats(report.ComputeStats(history))
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully generated report\n")
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", reportOutputFile)

	return nil
}
