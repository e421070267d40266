package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscriber_MissingKey(t *testing.T) {
	_, err := NewTranscriber(TranscriberConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestTranscribe(t *testing.T) {
	var gotAuth, gotModel string
	var gotAudio []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotAudio, _ = io.ReadAll(f)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"I led the migration to Go."}`))
	}))
	defer srv.Close()

	tr, err := NewTranscriber(TranscriberConfig{BaseURL: srv.URL, APIKey: "test-key"})
	require.NoError(t, err)

	text, err := tr.Transcribe(context.Background(), strings.NewReader("fake-audio"), "answer.wav")
	require.NoError(t, err)
	assert.Equal(t, "I led the migration to Go.", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, []byte("fake-audio"), gotAudio)
}

func TestTranscribeFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"hello"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("riff"), 0o644))

	tr, err := NewTranscriber(TranscriberConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	text, err := tr.TranscribeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTranscribe_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr, err := NewTranscriber(TranscriberConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = tr.Transcribe(context.Background(), strings.NewReader("x"), "a.wav")
	require.Error(t, err)
	var terr *TranscribeError
	assert.ErrorAs(t, err, &terr)
	assert.Contains(t, err.Error(), "429")
}

func TestNewSynthesizer_MissingKey(t *testing.T) {
	_, err := NewSynthesizer(SynthesizerConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/speech", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"input":"Tell me about yourself."`)
		assert.Contains(t, string(body), `"voice":"alloy"`)
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	s, err := NewSynthesizer(SynthesizerConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	audio, err := s.Synthesize(context.Background(), "Tell me about yourself.")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
}

func TestSynthesize_EmptyText(t *testing.T) {
	s, err := NewSynthesizer(SynthesizerConfig{APIKey: "k"})
	require.NoError(t, err)
	_, err = s.Synthesize(context.Background(), "")
	assert.Error(t, err)
}

func TestSynthesizeToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	s, err := NewSynthesizer(SynthesizerConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "q.mp3")
	require.NoError(t, s.SynthesizeToFile(context.Background(), "hi", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)
}
