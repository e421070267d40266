package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// SynthesizeError describes a failed text-to-speech request.
type SynthesizeError struct {
	Message string
	Cause   error
}

func (e *SynthesizeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("synthesis failed: %s", e.Message)
}

func (e *SynthesizeError) Unwrap() error { return e.Cause }

// SynthesizerConfig points at an OpenAI-compatible text-to-speech endpoint.
type SynthesizerConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Voice   string
	Format  string
	Timeout time.Duration
}

// DefaultSynthesizerConfig returns settings for reading questions aloud.
func DefaultSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{
		BaseURL: "https://api.openai.com/v1",
		Model:   "tts-1",
		Voice:   "alloy",
		Format:  "mp3",
		Timeout: 60 * time.Second,
	}
}

// Synthesizer renders interview questions as audio.
type Synthesizer struct {
	config SynthesizerConfig
	client *http.Client
}

// NewSynthesizer validates the config and returns a ready client.
func NewSynthesizer(config SynthesizerConfig) (*Synthesizer, error) {
	if config.APIKey == "" {
		return nil, &SynthesizeError{Message: "API key is required (set SPEECH_API_KEY or pass --speech-api-key)"}
	}
	defaults := DefaultSynthesizerConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Voice == "" {
		config.Voice = defaults.Voice
	}
	if config.Format == "" {
		config.Format = defaults.Format
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	return &Synthesizer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}, nil
}

type synthesisRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// Synthesize converts text to audio bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, &SynthesizeError{Message: "text is empty"}
	}

	payload, err := json.Marshal(synthesisRequest{
		Model:          s.config.Model,
		Input:          text,
		Voice:          s.config.Voice,
		ResponseFormat: s.config.Format,
	})
	if err != nil {
		return nil, &SynthesizeError{Message: "encoding request", Cause: err}
	}

	url := s.config.BaseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &SynthesizeError{Message: "building request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SynthesizeError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesizeError{Message: "reading response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SynthesizeError{Message: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))}
	}
	return body, nil
}

// SynthesizeToFile writes the rendered audio to disk.
func (s *Synthesizer) SynthesizeToFile(ctx context.Context, text, path string) error {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return &SynthesizeError{Message: fmt.Sprintf("writing %s", path), Cause: err}
	}
	return nil
}
