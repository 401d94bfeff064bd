// Package main provides the entry point for the candidate intake HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Candidate Intake HTTP API Server",
	Long:  "Candidate Intake serves the multi-step resume form: cascading location selectors, email OTP verification, validation, and dispatch to the profile backend.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
