// Package main provides the entry point for the interview coach CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Job interview preparation assistant",
	Long:  "Interview Agent analyzes a CV against a job posting, generates a tailored interview plan, runs mock interview sessions with per-answer evaluation and produces a final coaching report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
