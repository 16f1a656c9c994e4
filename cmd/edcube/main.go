// Package main provides the entry point for the EdCube curriculum generator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edcube",
	Short: "EdCube K-6 curriculum generator",
	Long:  "EdCube turns a grade, subject, and topic into a sectioned curriculum outline, then curates videos, printable worksheets, and classroom activities for each section.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
