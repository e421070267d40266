// Package speech provides speech-to-text and text-to-speech over
// Whisper-compatible HTTP APIs for the voice interview mode.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// TranscribeError describes a failed speech-to-text request.
type TranscribeError struct {
	Message string
	Cause   error
}

func (e *TranscribeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

func (e *TranscribeError) Unwrap() error { return e.Cause }

// TranscriberConfig points at a Whisper-compatible transcription endpoint.
type TranscriberConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultTranscriberConfig targets the OpenAI-compatible audio API. The base
// URL can be swapped for a local Whisper server.
func DefaultTranscriberConfig() TranscriberConfig {
	return TranscriberConfig{
		BaseURL: "https://api.openai.com/v1",
		Model:   "whisper-1",
		Timeout: 120 * time.Second,
	}
}

// Transcriber converts recorded answers into text.
type Transcriber struct {
	config TranscriberConfig
	client *http.Client
}

// NewTranscriber validates the config and returns a ready client.
func NewTranscriber(config TranscriberConfig) (*Transcriber, error) {
	if config.APIKey == "" {
		return nil, &TranscribeError{Message: "API key is required (set SPEECH_API_KEY or pass --speech-api-key)"}
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultTranscriberConfig().BaseURL
	}
	if config.Model == "" {
		config.Model = DefaultTranscriberConfig().Model
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTranscriberConfig().Timeout
	}
	return &Transcriber{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// TranscribeFile uploads an audio file and returns the recognized text.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &TranscribeError{Message: fmt.Sprintf("opening audio file %s", path), Cause: err}
	}
	defer f.Close()
	return t.Transcribe(ctx, f, filepath.Base(path))
}

// Transcribe sends audio bytes to the transcription endpoint.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", &TranscribeError{Message: "building multipart request", Cause: err}
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", &TranscribeError{Message: "reading audio data", Cause: err}
	}
	if err := writer.WriteField("model", t.config.Model); err != nil {
		return "", &TranscribeError{Message: "building multipart request", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return "", &TranscribeError{Message: "building multipart request", Cause: err}
	}

	url := t.config.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", &TranscribeError{Message: "building request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.config.APIKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &TranscribeError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &TranscribeError{Message: "reading response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &TranscribeError{Message: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, truncate(string(respBody), 200))}
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &TranscribeError{Message: "parsing response", Cause: err}
	}
	return parsed.Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
