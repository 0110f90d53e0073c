// Package main provides the entry point for the THRIVE Toolkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "thrive",
	Short: "THRIVE Toolkit career tools",
	Long:  "THRIVE Toolkit builds STAR-format resume bullets and experience card personas, serves them over a REST API, and exports them as PNG, PDF or DOCX.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
