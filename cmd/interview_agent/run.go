package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/evaluate"
	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/plan"
	"github.com/jonathan/interview-coach/internal/profile"
	"github.com/jonathan/interview-coach/internal/report"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full interview preparation flow end-to-end",
	Long: `Orchestrates the entire preparation flow: ingestion -> profile analysis -> plan generation -> interactive interview -> evaluation -> final report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runFullFlow,
}

var (
	runConfigPath string
	runCV         string
	runJob        string
	runJobURL     string
	runQuestions  int
	runStyle      string
	runAPIKey     string
	runUseBrowser bool
	runVerbose    bool
	runVoice      bool
	runSpeechKey  string
	runSpeechURL  string
	runOutDir     string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runCV, "cv", "", "Path to CV file (.pdf or .txt)")
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	runCommand.Flags().IntVarP(&runQuestions, "questions", "q", 0, "Number of questions to generate")
	runCommand.Flags().StringVarP(&runStyle, "style", "s", "", "Interviewer style, e.g. \"bienveillant\" or \"exigeant\"")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runVoice, "voice", false, "Voice mode: speak questions aloud and transcribe recorded answers")
	runCommand.Flags().StringVar(&runSpeechKey, "speech-api-key", "", "Speech API key (optional, defaults to SPEECH_API_KEY env var)")
	runCommand.Flags().StringVar(&runSpeechURL, "speech-base-url", "", "Override the speech API base URL")
	runCommand.Flags().StringVar(&runOutDir, "out-dir", ".", "Directory for generated artifacts")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runFullFlow(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("cv") {
		cfg.CV = runCV
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if cmd.Flags().Changed("questions") {
		cfg.NQuestions = runQuestions
	}
	if cmd.Flags().Changed("style") {
		cfg.InterviewerStyle = runStyle
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("voice") {
		cfg.Voice = runVoice
	}
	if cmd.Flags().Changed("speech-api-key") {
		cfg.SpeechAPIKey = runSpeechKey
	}
	if cmd.Flags().Changed("speech-base-url") {
		cfg.SpeechBaseURL = runSpeechURL
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		NQuestions:       8,
		InterviewerStyle: "bienveillant",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.CV == "" {
		return fmt.Errorf("--cv is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// Step 5: API Key handling
	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(runOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Step 6: Ingest inputs
	cvText, err := ingestion.ExtractFromFile(cfg.CV)
	if err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}

	jobText, err := loadJobText(ctx, cfg.Job, cfg.JobURL, cfg.UseBrowser)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stdout)

	// Step 7: Build the fit profile
	fit, err := profile.Build(ctx, client, cvText, jobText)
	if err != nil {
		return fmt.Errorf("failed to build fit profile: %w", err)
	}
	if err := writeJSONFile(fit, filepath.Join(runOutDir, "fit_profile.json"), "fit_profile.schema.json"); err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintFitProfile(fit)
	}

	// Step 8: Generate the interview plan
	interviewPlan, err := plan.Generate(ctx, client, fit, cfg.InterviewerStyle, cfg.NQuestions)
	if err != nil {
		return fmt.Errorf("failed to generate interview plan: %w", err)
	}
	if err := writeJSONFile(interviewPlan, filepath.Join(runOutDir, "interview_plan.json"), "interview_plan.schema.json"); err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintPlan(interviewPlan)
	}

	// Step 9: Run the interactive session
	io := interviewIO{
		evaluator:   evaluate.NewLLMEvaluator(client),
		printer:     printer,
		verbose:     cfg.Verbose,
		progress:    true,
		sessionPath: filepath.Join(runOutDir, "session.json"),
	}
	if cfg.Voice {
		speechKey, err := resolveSpeechKey(cfg.SpeechAPIKey)
		if err != nil {
			return err
		}
		if io.transcriber, err = newSpeechTranscriber(speechKey, cfg.SpeechBaseURL); err != nil {
			return err
		}
		if io.synthesizer, err = newSpeechSynthesizer(speechKey, cfg.SpeechBaseURL, ""); err != nil {
			return err
		}
	}

	sess := session.New(fit, jobText)
	sess.SetPlan(interviewPlan)

	if err := runInterviewLoop(ctx, sess, io); err != nil {
		return err
	}

	if err := finishInterview(sess, printer, filepath.Join(runOutDir, "history.json")); err != nil {
		return err
	}

	// Step 10: Final report, skipped when nothing was answered
	if len(sess.History) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No answers recorded, skipping final report.")
		return nil
	}

	reportText, err := report.GenerateFinalReport(ctx, client, sess.History)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	reportPath := filepath.Join(runOutDir, "report.md")
	if err := os.WriteFile(reportPath, []byte(reportText), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Report: %s\n", reportPath)
	return nil
}
