package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func extractionRequirement() *types.SectionRequirement {
	return &types.SectionRequirement{
		Title:              "Photosynthesis",
		LearningObjectives: []string{"Explain how plants convert sunlight into energy"},
		GradeLevel:         5,
	}
}

func worksheetImage() search.ImageResult {
	return search.ImageResult{
		Title:        "Photosynthesis Labeling Worksheet",
		Snippet:      "Label the parts of a leaf.",
		ImageURL:     "https://example.com/ws.png",
		SourceURL:    "https://example.com/worksheets/photosynthesis",
		ThumbnailURL: "https://example.com/ws-thumb.png",
	}
}

func TestWorksheetAnalyzeBuildsCandidate(t *testing.T) {
	client := &fakeLLM{response: `{
		"worksheet_title": "Label the Leaf",
		"grade_level": "5",
		"topics_covered": ["photosynthesis", "leaf anatomy"],
		"visual_quality": 8,
		"educational_value": 7,
		"is_age_appropriate": true,
		"has_images_or_art": true
	}`}
	analyzer := NewWorksheetAnalyzer(client)

	got, err := analyzer.Analyze(context.Background(), worksheetImage(), extractionRequirement())
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/ws.png", got.ID)
	assert.Equal(t, "Label the Leaf", got.Title)
	assert.Equal(t, []string{"photosynthesis", "leaf anatomy"}, got.CoveredTopics)
	require.NotNil(t, got.Worksheet)
	assert.Equal(t, 8, got.Worksheet.VisualQuality)
	assert.Equal(t, 7, got.Worksheet.EducationalValue)
	assert.True(t, got.Worksheet.AgeAppropriate)
	assert.Equal(t, "https://example.com/worksheets/photosynthesis", got.Worksheet.SourceURL)
}

func TestWorksheetAnalyzeFallsBackToImageTitle(t *testing.T) {
	client := &fakeLLM{response: `{
		"visual_quality": 6,
		"educational_value": 6,
		"is_age_appropriate": true
	}`}
	analyzer := NewWorksheetAnalyzer(client)

	got, err := analyzer.Analyze(context.Background(), worksheetImage(), extractionRequirement())
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis Labeling Worksheet", got.Title)
}

func TestWorksheetAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeLLM
	}{
		{"transport failure", &fakeLLM{err: errors.New("model overloaded")}},
		{"malformed response", &fakeLLM{response: `{"worksheet_title": "x"}`}},
		{"out of range rating", &fakeLLM{response: `{"visual_quality": 15, "educational_value": 5, "is_age_appropriate": true}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewWorksheetAnalyzer(tt.client)
			_, err := analyzer.Analyze(context.Background(), worksheetImage(), extractionRequirement())
			assert.Error(t, err)
		})
	}
}
