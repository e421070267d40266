package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/interview-coach/internal/evaluate"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/report"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/speech"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const (
	promptAnswer = "Answer"
	promptSkip   = "Skip"
	promptQuit   = "Quit"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview session",
	Long:  "Walk through an interview plan question by question, collect answers from the terminal (or from recorded audio files in voice mode), evaluate each answer and write the session history JSON.",
	RunE:  runInterview,
}

var (
	interviewFitFile      string
	interviewPlanFile     string
	interviewSessionFile  string
	interviewJob          string
	interviewOutputFile   string
	interviewAPIKey       string
	interviewVoice        bool
	interviewSpeechKey    string
	interviewSpeechURL    string
	interviewSynthVoice   string
	interviewVerbose      bool
	interviewShowProgress bool
)

func init() {
	interviewCmd.Flags().StringVarP(&interviewFitFile, "fit", "f", "", "Path to fit profile JSON file (required)")
	interviewCmd.Flags().StringVarP(&interviewPlanFile, "plan", "p", "", "Path to interview plan JSON file (required)")
	interviewCmd.Flags().StringVar(&interviewSessionFile, "session", "session.json", "Path where the session state is persisted after every action")
	interviewCmd.Flags().StringVarP(&interviewJob, "job", "j", "", "Path to job posting text file (optional, adds evaluation context)")
	interviewCmd.Flags().StringVarP(&interviewOutputFile, "out", "o", "history.json", "Path to output history JSON file")
	interviewCmd.Flags().StringVar(&interviewAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	interviewCmd.Flags().BoolVar(&interviewVoice, "voice", false, "Voice mode: speak questions aloud and transcribe recorded answers")
	interviewCmd.Flags().StringVar(&interviewSpeechKey, "speech-api-key", "", "Speech API key (overrides SPEECH_API_KEY env var)")
	interviewCmd.Flags().StringVar(&interviewSpeechURL, "speech-base-url", "", "Override the speech API base URL (e.g. a local Whisper server)")
	interviewCmd.Flags().StringVar(&interviewSynthVoice, "synth-voice", "", "Voice used for question synthesis (default alloy)")
	interviewCmd.Flags().BoolVarP(&interviewVerbose, "verbose", "v", false, "Print the full evaluation after each answer")
	interviewCmd.Flags().BoolVar(&interviewShowProgress, "progress", true, "Show question progress before each question")

	rootCmd.AddCommand(interviewCmd)
}

// interviewIO bundles everything the interactive loop needs beyond the
// session itself.
type interviewIO struct {
	evaluator   evaluate.Evaluator
	printer     *observability.Printer
	transcriber *speech.Transcriber
	synthesizer *speech.Synthesizer
	verbose     bool
	progress    bool

	// sessionPath, when set, receives the full session JSON after every
	// skip or submit so an interrupted run loses at most one action.
	sessionPath string
}

func runInterview(_ *cobra.Command, _ []string) error {
	if interviewFitFile == "" {
		return fmt.Errorf("--fit is required")
	}
	if interviewPlanFile == "" {
		return fmt.Errorf("--plan is required")
	}

	apiKey, err := resolveAPIKey(interviewAPIKey)
	if err != nil {
		return err
	}

	var fit types.FitProfile
	if err := readJSONFile(interviewFitFile, &fit); err != nil {
		return err
	}

	var interviewPlan types.InterviewPlan
	if err := readJSONFile(interviewPlanFile, &interviewPlan); err != nil {
		return err
	}
	if len(interviewPlan) == 0 {
		return fmt.Errorf("interview plan %s contains no questions", interviewPlanFile)
	}

	jobText := ""
	if interviewJob != "" {
		jobText, err = loadJobText(context.Background(), interviewJob, "", false)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	io := interviewIO{
		evaluator:   evaluate.NewLLMEvaluator(client),
		printer:     observability.NewPrinter(os.Stdout),
		verbose:     interviewVerbose,
		progress:    interviewShowProgress,
		sessionPath: interviewSessionFile,
	}

	if interviewVoice {
		speechKey, err := resolveSpeechKey(interviewSpeechKey)
		if err != nil {
			return err
		}
		if io.transcriber, err = newSpeechTranscriber(speechKey, interviewSpeechURL); err != nil {
			return err
		}
		if io.synthesizer, err = newSpeechSynthesizer(speechKey, interviewSpeechURL, interviewSynthVoice); err != nil {
			return err
		}
	}

	sess := session.New(&fit, jobText)
	sess.SetPlan(interviewPlan)

	if err := runInterviewLoop(ctx, sess, io); err != nil {
		return err
	}

	return finishInterview(sess, io.printer, interviewOutputFile)
}

// finishInterview persists the accumulated history and prints the aggregate
// statistics. It runs even after an early quit so partial runs are not lost.
func finishInterview(sess *session.Session, printer *observability.Printer, outputFile string) error {
	if err := writeJSONFile(sess.History, outputFile, "history.schema.json"); err != nil {
		return err
	}

	stats := report.ComputeStats(sess.History)
	printer.PrintStats(stats)

	_, _ = fmt.Fprintf(os.Stdout, "Answered %d of %d questions\n", len(sess.History), len(sess.Plan))
	_, _ = fmt.Fprintf(os.Stdout, "History: %s\n", outputFile)

	return nil
}

func newSpeechTranscriber(apiKey, baseURL string) (*speech.Transcriber, error) {
	cfg := speech.DefaultTranscriberConfig()
	cfg.APIKey = apiKey
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return speech.NewTranscriber(cfg)
}

func newSpeechSynthesizer(apiKey, baseURL, voice string) (*speech.Synthesizer, error) {
	cfg := speech.DefaultSynthesizerConfig()
	cfg.APIKey = apiKey
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if voice != "" {
		cfg.Voice = voice
	}
	return speech.NewSynthesizer(cfg)
}

// runInterviewLoop drives the session until it completes or the user quits.
// A quit leaves the session in its current state; whatever history was
// accumulated is still written out by the caller.
func runInterviewLoop(ctx context.Context, sess *session.Session, io interviewIO) error {
	for sess.Status() == session.StatusNotStarted || sess.Status() == session.StatusInProgress {
		question, ok := sess.Current()
		if !ok {
			break
		}

		if io.progress {
			_, _ = fmt.Fprintf(os.Stdout, "\n[%s] %s", sess.Progress(), question.Type)
			if question.Topic != "" {
				_, _ = fmt.Fprintf(os.Stdout, " (%s)", question.Topic)
			}
			_, _ = fmt.Fprintln(os.Stdout)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Q: %s\n", question.Question)

		if io.synthesizer != nil {
			if err := speakQuestion(ctx, io.synthesizer, sess, question.Question); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: could not synthesize question: %v\n", err)
			}
		}

		action, err := promptAction()
		if err != nil {
			return err
		}

		switch action {
		case promptQuit:
			return nil
		case promptSkip:
			if err := sess.Skip(); err != nil {
				return err
			}
			persistSession(sess, io.sessionPath)
			continue
		}

		answer, err := collectAnswer(ctx, sess, io.transcriber)
		if err != nil {
			return err
		}

		evaluation, ok := submitAnswer(ctx, sess, answer, io)
		if !ok {
			continue
		}

		if io.verbose {
			io.printer.PrintEvaluation(evaluation)
		} else {
			_, _ = fmt.Fprintf(os.Stdout, "Score: %d/10\n", evaluation.Score)
		}
	}

	return nil
}

// submitAnswer runs one evaluation attempt. An empty answer or a failed
// evaluator call leaves the session untouched and keeps the question on deck,
// so the user can answer again or skip; the run itself never aborts here.
func submitAnswer(ctx context.Context, sess *session.Session, answer string, io interviewIO) (*types.EvaluationResult, bool) {
	evaluation, err := sess.Submit(ctx, answer, io.evaluator)
	if err != nil {
		if errors.Is(err, session.ErrEmptyAnswer) {
			_, _ = fmt.Fprintln(os.Stdout, "Empty answer, the question stays on deck.")
			return nil, false
		}
		_, _ = fmt.Fprintf(os.Stderr, "Warning: evaluation failed: %v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, "The question stays on deck; answer again or skip.")
		return nil, false
	}
	persistSession(sess, io.sessionPath)
	return evaluation, true
}

// persistSession is best-effort: a failed write must not abort a live
// interview, so it only warns.
func persistSession(sess *session.Session, path string) {
	if path == "" {
		return
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err == nil {
		err = os.WriteFile(path, data, 0644)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: could not persist session to %s: %v\n", path, err)
	}
}

func promptAction() (string, error) {
	actionPrompt := promptui.Select{
		Label: "What do you want to do",
		Items: []string{promptAnswer, promptSkip, promptQuit},
	}
	_, action, err := actionPrompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return promptQuit, nil
		}
		return "", err
	}
	return action, nil
}

// collectAnswer reads the answer from the terminal, or in voice mode asks
// for the path to a recorded audio file and transcribes it. Voice answers
// are cached on the session so a re-run never pays for the same
// transcription twice.
func collectAnswer(ctx context.Context, sess *session.Session, transcriber *speech.Transcriber) (string, error) {
	if transcriber == nil {
		answerPrompt := promptui.Prompt{Label: "Your answer"}
		answer, err := answerPrompt.Run()
		if err != nil {
			return "", err
		}
		return answer, nil
	}

	pathPrompt := promptui.Prompt{Label: "Path to recorded answer (audio file)"}
	audioPath, err := pathPrompt.Run()
	if err != nil {
		return "", err
	}
	audioPath = strings.TrimSpace(audioPath)

	index := sess.Cursor
	if cached, ok := sess.Transcription(index); ok {
		return cached, nil
	}

	text, err := transcriber.TranscribeFile(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe %s: %w", filepath.Base(audioPath), err)
	}
	sess.SetTranscription(index, text)

	_, _ = fmt.Fprintf(os.Stdout, "Transcribed: %s\n", text)
	return text, nil
}

func speakQuestion(ctx context.Context, synthesizer *speech.Synthesizer, sess *session.Session, question string) error {
	dir := os.TempDir()
	path := filepath.Join(dir, fmt.Sprintf("interview_question_%d.mp3", sess.Cursor))
	if err := synthesizer.SynthesizeToFile(ctx, question, path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Question audio: %s\n", path)
	return nil
}
