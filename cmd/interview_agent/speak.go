package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Synthesize text to an audio file",
	Long:  "Send text (from a flag or a file) to the text-to-speech endpoint and write the resulting audio file. Useful for preparing question audio ahead of a voice-mode session.",
	RunE:  runSpeak,
}

var (
	speakText       string
	speakInputFile  string
	speakOutputFile string
	speakAPIKey     string
	speakBaseURL    string
	speakVoice      string
)

func init() {
	speakCmd.Flags().StringVarP(&speakText, "text", "t", "", "Text to synthesize (mutually exclusive with --in)")
	speakCmd.Flags().StringVarP(&speakInputFile, "in", "i", "", "Path to text file to synthesize (mutually exclusive with --text)")
	speakCmd.Flags().StringVarP(&speakOutputFile, "out", "o", "speech.mp3", "Path to output audio file")
	speakCmd.Flags().StringVar(&speakAPIKey, "speech-api-key", "", "Speech API key (overrides SPEECH_API_KEY env var)")
	speakCmd.Flags().StringVar(&speakBaseURL, "speech-base-url", "", "Override the speech API base URL")
	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "Synthesis voice (default alloy)")

	rootCmd.AddCommand(speakCmd)
}

func runSpeak(_ *cobra.Command, _ []string) error {
	if speakText != "" && speakInputFile != "" {
		return fmt.Errorf("--text and --in are mutually exclusive; provide only one")
	}
	if speakText == "" && speakInputFile == "" {
		return fmt.Errorf("either --text or --in must be provided")
	}

	apiKey, err := resolveSpeechKey(speakAPIKey)
	if err != nil {
		return err
	}

	text := speakText
	if speakInputFile != "" {
		data, err := os.ReadFile(speakInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
	}

	synthesizer, err := newSpeechSynthesizer(apiKey, speakBaseURL, speakVoice)
	if err != nil {
		return err
	}

	if err := synthesizer.SynthesizeToFile(context.Background(), text, speakOutputFile); err != nil {
		return fmt.Errorf("failed to synthesize: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", speakOutputFile)
	return nil
}
