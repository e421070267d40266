package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/speech"
	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe a recorded answer to text",
	Long:  "Send an audio file to the speech-to-text endpoint and print (or save) the transcription.",
	RunE:  runTranscribe,
}

var (
	transcribeInputFile  string
	transcribeOutputFile string
	transcribeAPIKey     string
	transcribeBaseURL    string
	transcribeModel      string
)

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeInputFile, "in", "i", "", "Path to audio file (required)")
	transcribeCmd.Flags().StringVarP(&transcribeOutputFile, "out", "o", "", "Path to output text file (default: stdout)")
	transcribeCmd.Flags().StringVar(&transcribeAPIKey, "speech-api-key", "", "Speech API key (overrides SPEECH_API_KEY env var)")
	transcribeCmd.Flags().StringVar(&transcribeBaseURL, "speech-base-url", "", "Override the speech API base URL (e.g. a local Whisper server)")
	transcribeCmd.Flags().StringVar(&transcribeModel, "model", "", "Transcription model (default whisper-1)")

	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(_ *cobra.Command, _ []string) error {
	if transcribeInputFile == "" {
		return fmt.Errorf("--in is required")
	}

	apiKey, err := resolveSpeechKey(transcribeAPIKey)
	if err != nil {
		return err
	}

	cfg := speech.DefaultTranscriberConfig()
	cfg.APIKey = apiKey
	if transcribeBaseURL != "" {
		cfg.BaseURL = transcribeBaseURL
	}
	if transcribeModel != "" {
		cfg.Model = transcribeModel
	}

	transcriber, err := speech.NewTranscriber(cfg)
	if err != nil {
		return err
	}

	text, err := transcriber.TranscribeFile(context.Background(), transcribeInputFile)
	if err != nil {
		return fmt.Errorf("failed to transcribe: %w", err)
	}

	if transcribeOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, text)
		return nil
	}

	if err := os.WriteFile(transcribeOutputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", transcribeOutputFile)
	return nil
}
