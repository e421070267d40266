package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withoutSpeechKeys strips the speech API keys from the environment so the
// commands fail with the expected message regardless of the host setup.
func withoutSpeechKeys() []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "SPEECH_API_KEY=") || strings.HasPrefix(e, "OPENAI_API_KEY=") {
			continue
		}
		env = append(env, e)
	}
	return env
}

func TestTranscribeCommand_FlagsValidation(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "transcribe")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--in is required")
}

func TestTranscribeCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "transcribe", "--in", "answer.mp3")
	cmd.Env = withoutSpeechKeys()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "speech API key is required")
}

func TestSpeakCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "No input",
			args:        []string{"speak"},
			errorString: "either --text or --in must be provided",
		},
		{
			name:        "Both inputs",
			args:        []string{"speak", "--text", "hello", "--in", "text.txt"},
			errorString: "mutually exclusive",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			cmd.Env = withoutSpeechKeys()
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}
