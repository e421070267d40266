package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	// Missing all required flags for 'run'
	cmd := exec.Command(binaryPath, "run")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--cv is required")
}

func TestRunCommand_MissingJobInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cvFile := filepath.Join(tmpDir, "cv.txt")
	err := os.WriteFile(cvFile, []byte("Senior Go developer"), 0644)
	assert.NoError(t, err)

	cmd := exec.Command(binaryPath, "run", "--cv", cvFile)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --job or --job-url must be provided")
}

func TestRunCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cvFile := filepath.Join(tmpDir, "cv.txt")
	err := os.WriteFile(cvFile, []byte("Senior Go developer"), 0644)
	assert.NoError(t, err)
	jobFile := filepath.Join(tmpDir, "job.txt")
	err = os.WriteFile(jobFile, []byte("Backend engineer position"), 0644)
	assert.NoError(t, err)

	cmd := exec.Command(binaryPath, "run",
		"--cv", cvFile,
		"--job", jobFile,
		"--out-dir", filepath.Join(tmpDir, "out"))

	// Filter out GEMINI_API_KEY
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GEMINI_API_KEY=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "API key is required")
}

func TestRunCommand_ConfigFileNotFound(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run", "--config", "does_not_exist.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to load config")
}
