// Package extraction converts raw search hits into analyzed resource
// candidates: worksheet images get an LLM quality assessment, activity pages
// get crawled and their instructions extracted. Both operate on one item at
// a time; batching and fan-out belong to the selection engine.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/prompts"
	"github.com/m-ayala/edcube-mvp/internal/schemas"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// WorksheetAnalyzer turns worksheet image search results into candidates
// with estimated quality facts.
type WorksheetAnalyzer struct {
	client llm.Client
}

// NewWorksheetAnalyzer creates an analyzer using the given LLM client.
func NewWorksheetAnalyzer(client llm.Client) *WorksheetAnalyzer {
	return &WorksheetAnalyzer{client: client}
}

// worksheetFacts mirrors the LLM's assessment response.
type worksheetFacts struct {
	WorksheetTitle   string   `json:"worksheet_title"`
	GradeLevel       string   `json:"grade_level"`
	TopicsCovered    []string `json:"topics_covered"`
	VisualQuality    int      `json:"visual_quality"`
	EducationalValue int      `json:"educational_value"`
	AgeAppropriate   bool     `json:"is_age_appropriate"`
	HasImagesOrArt   bool     `json:"has_images_or_art"`
}

// Analyze assesses one image result and shapes it as a worksheet candidate.
func (a *WorksheetAnalyzer) Analyze(ctx context.Context, img search.ImageResult, req *types.SectionRequirement) (*types.Candidate, error) {
	template := prompts.MustGet("resources.json", "worksheet-analysis")
	prompt := prompts.Format(template, map[string]string{
		"Title":        img.Title,
		"Snippet":      img.Snippet,
		"SourceURL":    img.SourceURL,
		"GradeLevel":   strconv.Itoa(req.GradeLevel),
		"SectionTitle": req.Title,
	})
	system := prompts.MustGet("resources.json", "worksheet-analysis-system")

	raw, err := a.client.GenerateJSON(ctx, system, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("worksheet assessment failed: %w", err)
	}
	if err := schemas.ValidateResponse(schemas.WorksheetFacts, raw); err != nil {
		return nil, fmt.Errorf("worksheet assessment returned malformed response: %w", err)
	}

	var facts worksheetFacts
	if err := json.Unmarshal([]byte(raw), &facts); err != nil {
		return nil, fmt.Errorf("failed to parse worksheet assessment: %w", err)
	}

	title := facts.WorksheetTitle
	if title == "" {
		title = img.Title
	}

	return &types.Candidate{
		ID:            img.ImageURL,
		Title:         title,
		CoveredTopics: facts.TopicsCovered,
		Worksheet: &types.WorksheetDetails{
			ImageURL:         img.ImageURL,
			SourceURL:        img.SourceURL,
			ThumbnailURL:     img.ThumbnailURL,
			GradeLevel:       facts.GradeLevel,
			VisualQuality:    facts.VisualQuality,
			EducationalValue: facts.EducationalValue,
			AgeAppropriate:   facts.AgeAppropriate,
			HasImagesOrArt:   facts.HasImagesOrArt,
		},
	}, nil
}
