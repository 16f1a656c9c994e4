// Package analysis provides the LLM-backed semantic classification used by
// the selection pipeline: topic extraction, coverage assessment against a
// section requirement, redundancy detection against the accepted set, and
// suitability checks for worksheets and activities.
//
// Topic sets are natural-language phrases, not canonical IDs, so overlap and
// coverage require semantic comparison rather than set operations.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/prompts"
	"github.com/m-ayala/edcube-mvp/internal/schemas"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// Conservative defaults substituted when a semantic call fails, so the
// pipeline degrades gracefully instead of rejecting everything.
const (
	fallbackCoveragePercentage   = 50
	fallbackRedundancyPercentage = 20
)

// Classifier performs semantic analysis through an LLM client.
type Classifier struct {
	client llm.Client
}

// NewClassifier creates a classifier backed by the given LLM client.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// AnalyzeContent determines what topics a piece of content covers, from its
// title and description. Errors are returned to the caller; the engine drops
// the candidate rather than aborting the run.
func (c *Classifier) AnalyzeContent(ctx context.Context, title, description string, req *types.SectionRequirement) (*types.TopicAnalysis, error) {
	template := prompts.MustGet("analysis.json", "analyze-content")
	prompt := prompts.Format(template, map[string]string{
		"Title":        title,
		"Description":  llm.Truncate(description, 2000),
		"SectionTitle": req.Title,
		"Objectives":   formatList(req.LearningObjectives),
	})
	system := prompts.MustGet("analysis.json", "analyze-content-system")

	raw, err := c.client.GenerateJSON(ctx, system, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("content analysis failed: %w", err)
	}
	if err := schemas.ValidateResponse(schemas.TopicAnalysis, raw); err != nil {
		return nil, fmt.Errorf("content analysis returned malformed response: %w", err)
	}

	var result types.TopicAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse content analysis: %w", err)
	}
	if result.ContentDepth == "" {
		result.ContentDepth = types.DepthUnknown
	}
	return &result, nil
}

// Coverage assesses how well the covered topics satisfy the section
// requirement. Never fails: a transport or parse error yields a neutral
// 50% assessment so one flaky call does not sink an otherwise good
// candidate.
func (c *Classifier) Coverage(ctx context.Context, topics []string, req *types.SectionRequirement) *types.CoverageAnalysis {
	template := prompts.MustGet("analysis.json", "coverage")
	prompt := prompts.Format(template, map[string]string{
		"Objectives": formatList(req.LearningObjectives),
		"Keywords":   formatList(req.ContentKeywords),
		"MustCover":  req.MustCover,
		"Topics":     formatList(topics),
	})
	system := prompts.MustGet("analysis.json", "coverage-system")

	raw, err := c.client.GenerateJSON(ctx, system, prompt, llm.TierStandard)
	if err == nil {
		err = schemas.ValidateResponse(schemas.Coverage, raw)
	}
	if err != nil {
		log.Printf("coverage assessment failed, using neutral default: %v", err)
		return &types.CoverageAnalysis{
			CoveragePercentage: fallbackCoveragePercentage,
			Assessment:         "unable to assess",
		}
	}

	var result types.CoverageAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("coverage assessment unparseable, using neutral default: %v", err)
		return &types.CoverageAnalysis{
			CoveragePercentage: fallbackCoveragePercentage,
			Assessment:         "unable to assess",
		}
	}
	return &result
}

// Redundancy compares a candidate's covered topics against the accepted
// set. An empty accepted set is always zero redundancy with all topics
// unique; a failed semantic call defaults to low redundancy.
func (c *Classifier) Redundancy(ctx context.Context, newTopics []string, accepted []types.Candidate) *types.RedundancyAnalysis {
	if len(accepted) == 0 {
		return &types.RedundancyAnalysis{
			RedundancyPercentage: 0,
			UniqueNewContent:     newTopics,
		}
	}

	var existing []string
	for _, cand := range accepted {
		existing = append(existing, cand.CoveredTopics...)
	}

	template := prompts.MustGet("analysis.json", "redundancy")
	prompt := prompts.Format(template, map[string]string{
		"NewTopics":      formatList(newTopics),
		"ExistingTopics": formatList(existing),
	})
	system := prompts.MustGet("analysis.json", "redundancy-system")

	raw, err := c.client.GenerateJSON(ctx, system, prompt, llm.TierLite)
	if err == nil {
		err = schemas.ValidateResponse(schemas.Redundancy, raw)
	}
	if err != nil {
		log.Printf("redundancy detection failed, assuming low overlap: %v", err)
		return &types.RedundancyAnalysis{
			RedundancyPercentage: fallbackRedundancyPercentage,
			UniqueNewContent:     newTopics,
		}
	}

	var result types.RedundancyAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("redundancy response unparseable, assuming low overlap: %v", err)
		return &types.RedundancyAnalysis{
			RedundancyPercentage: fallbackRedundancyPercentage,
			UniqueNewContent:     newTopics,
		}
	}
	return &result
}

// Relevance evaluates a worksheet or activity against the section
// requirement. Errors drop the candidate, matching the strict-then-fallback
// shape of the lenient variants.
func (c *Classifier) Relevance(ctx context.Context, resourceSummary string, req *types.SectionRequirement) (*types.Relevance, error) {
	template := prompts.MustGet("analysis.json", "relevance")
	prompt := prompts.Format(template, map[string]string{
		"Resource":     llm.Truncate(resourceSummary, 3000),
		"SectionTitle": req.Title,
		"GradeLevel":   strconv.Itoa(req.GradeLevel),
		"Objectives":   formatList(req.LearningObjectives),
		"Keywords":     formatList(req.ContentKeywords),
	})
	system := prompts.MustGet("analysis.json", "relevance-system")

	raw, err := c.client.GenerateJSON(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("relevance check failed: %w", err)
	}
	if err := schemas.ValidateResponse(schemas.Relevance, raw); err != nil {
		return nil, fmt.Errorf("relevance check returned malformed response: %w", err)
	}

	var result types.Relevance
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse relevance response: %w", err)
	}
	return &result, nil
}

// formatList renders a string slice as a newline-separated bullet list for
// prompt interpolation.
func formatList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
