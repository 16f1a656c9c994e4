// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOutline outputs a human-readable summary of a generated curriculum.
func (p *Printer) PrintOutline(curriculum *types.Curriculum) {
	if curriculum == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic:    %s\n", curriculum.Topic))
	sb.WriteString(fmt.Sprintf("Subject:  %s\n", curriculum.Subject))
	sb.WriteString(fmt.Sprintf("Grade:    %d\n", curriculum.GradeLevel))
	sb.WriteString(fmt.Sprintf("Budget:   %d minutes\n", curriculum.TotalMinutes))
	sb.WriteString("\n")

	for i, section := range curriculum.Sections {
		sb.WriteString(fmt.Sprintf("%d. %s (%d min)\n", i+1, section.Title, section.DurationMinutes))
		count := min(len(section.Objectives), maxItemsToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("   • %s\n", section.Objectives[j]))
		}
		if len(section.Objectives) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(section.Objectives)-maxItemsToShow))
		}
	}

	p.printBox("Curriculum Outline", strings.TrimRight(sb.String(), "\n"))
}

// PrintSelectionResult outputs a summary of one section's selection run.
func (p *Printer) PrintSelectionResult(sectionTitle, kind string, result *types.SelectionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Section:    %s\n", sectionTitle))
	sb.WriteString(fmt.Sprintf("Accepted:   %d\n", len(result.Accepted)))
	sb.WriteString(fmt.Sprintf("Coverage:   %.0f%%\n", result.CoveragePercentage))
	sb.WriteString(fmt.Sprintf("Iterations: %d\n", result.IterationsPerformed))
	sb.WriteString("\n")

	count := min(len(result.Accepted), maxItemsToShow)
	for i := 0; i < count; i++ {
		cand := result.Accepted[i]
		sb.WriteString(fmt.Sprintf("  %d. %s (score %.1f)\n", i+1, cand.Title, cand.Score))
	}

	if len(result.QueriesUsed) > 0 {
		sb.WriteString("\nQueries:\n")
		queryCount := min(len(result.QueriesUsed), maxItemsToShow)
		for i := 0; i < queryCount; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.QueriesUsed[i]))
		}
	}

	p.printBox(fmt.Sprintf("Selected %s", kind), strings.TrimRight(sb.String(), "\n"))
}
