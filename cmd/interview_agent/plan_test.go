package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --fit flag",
			args:        []string{"plan", "--api-key", "dummy-key"},
			errorString: "--fit is required",
		},
		{
			name:        "Negative question count",
			args:        []string{"plan", "--fit", "fit.json", "--questions", "-3", "--api-key", "dummy-key"},
			errorString: "--questions must be non-negative",
		},
		{
			name:        "Nonexistent fit profile",
			args:        []string{"plan", "--fit", "does_not_exist.json", "--api-key", "dummy-key"},
			errorString: "failed to read",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}
