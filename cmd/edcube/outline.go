package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/observability"
	"github.com/m-ayala/edcube-mvp/internal/outline"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

var (
	outlineConfigPath   string
	outlineGrade        string
	outlineSubject      string
	outlineTopic        string
	outlineDuration     string
	outlineRequirements string
	outlineOutput       string
	outlineVerbose      bool
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Generate a curriculum outline",
	Long:  `Generate a sectioned curriculum outline for a grade, subject, and topic, and write it to a JSON file for later population.`,
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().StringVar(&outlineConfigPath, "config", "", "Path to config.json file")
	outlineCmd.Flags().StringVarP(&outlineGrade, "grade", "g", "", "Grade level, e.g. \"3\" or \"K\" (required)")
	outlineCmd.Flags().StringVarP(&outlineSubject, "subject", "s", "", "Subject, e.g. \"Science\" (required)")
	outlineCmd.Flags().StringVarP(&outlineTopic, "topic", "t", "", "Topic, e.g. \"Photosynthesis\" (required)")
	outlineCmd.Flags().StringVarP(&outlineDuration, "duration", "d", "", "Time budget, e.g. \"300\" or \"2 weeks\"")
	outlineCmd.Flags().StringVarP(&outlineRequirements, "requirements", "r", "", "Teacher comments and priorities")
	outlineCmd.Flags().StringVarP(&outlineOutput, "output", "o", "curriculum.json", "Output file path")
	outlineCmd.Flags().BoolVarP(&outlineVerbose, "verbose", "v", false, "Print the generated outline")

	_ = outlineCmd.MarkFlagRequired("grade")
	_ = outlineCmd.MarkFlagRequired("subject")
	_ = outlineCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(outlineCmd)
}

func runOutline(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(outlineConfigPath)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("a Gemini API key is required (GEMINI_API_KEY or config file)")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	req := &types.GenerateRequest{
		GradeLevel:   outlineGrade,
		Subject:      outlineSubject,
		Topic:        outlineTopic,
		Duration:     outlineDuration,
		Requirements: outlineRequirements,
	}

	curriculum, err := outline.NewGenerator(client).Generate(ctx, req)
	if err != nil {
		return err
	}

	if outlineVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintOutline(curriculum)
	}

	if err := writeJSON(outlineOutput, curriculum); err != nil {
		return err
	}
	fmt.Printf("Outline with %d sections written to %s\n", len(curriculum.Sections), outlineOutput)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
