package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/m-ayala/edcube-mvp/internal/fetch"
	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/prompts"
	"github.com/m-ayala/edcube-mvp/internal/schemas"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// maxPageTextChars bounds how much crawled text goes into the extraction
// prompt.
const maxPageTextChars = 8000

// ActivityExtractor crawls lesson-plan pages and extracts structured
// classroom activities from them.
type ActivityExtractor struct {
	client     llm.Client
	useBrowser bool
}

// NewActivityExtractor creates an extractor. When useBrowser is set, pages
// with thin static HTML are retried through a headless browser.
func NewActivityExtractor(client llm.Client, useBrowser bool) *ActivityExtractor {
	return &ActivityExtractor{client: client, useBrowser: useBrowser}
}

// extractedActivity mirrors the LLM's extraction response.
type extractedActivity struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	Materials          []string `json:"materials"`
	Steps              []string `json:"steps"`
	Duration           string   `json:"duration"`
	LearningObjectives []string `json:"learning_objectives"`
	TopicsCovered      []string `json:"topics_covered"`
}

// Extract fetches one page and asks the LLM for the activity it describes.
// A nil candidate with nil error means the page held no usable activity.
func (e *ActivityExtractor) Extract(ctx context.Context, page search.PageResult, req *types.SectionRequirement) (*types.Candidate, error) {
	result, err := fetch.Page(ctx, page.URL, fetch.DefaultOptions(), e.useBrowser)
	if err != nil {
		return nil, fmt.Errorf("page fetch failed: %w", err)
	}
	if result.Text == "" {
		return nil, nil
	}

	template := prompts.MustGet("resources.json", "activity-extraction")
	prompt := prompts.Format(template, map[string]string{
		"Title":      page.Title,
		"URL":        page.URL,
		"GradeLevel": strconv.Itoa(req.GradeLevel),
		"Text":       llm.Truncate(result.Text, maxPageTextChars),
	})
	system := prompts.MustGet("resources.json", "activity-extraction-system")

	raw, err := e.client.GenerateJSON(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("activity extraction failed: %w", err)
	}
	if err := schemas.ValidateResponse(schemas.Activity, raw); err != nil {
		return nil, fmt.Errorf("activity extraction returned malformed response: %w", err)
	}

	var extracted extractedActivity
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse activity response: %w", err)
	}
	if extracted.Name == "" {
		return nil, nil
	}

	return &types.Candidate{
		ID:            page.URL,
		Title:         extracted.Name,
		CoveredTopics: extracted.TopicsCovered,
		Activity: &types.ActivityDetails{
			Name:               extracted.Name,
			Type:               extracted.Type,
			Description:        extracted.Description,
			Materials:          extracted.Materials,
			Steps:              extracted.Steps,
			Duration:           extracted.Duration,
			LearningObjectives: extracted.LearningObjectives,
			SourceURL:          page.URL,
		},
	}, nil
}
