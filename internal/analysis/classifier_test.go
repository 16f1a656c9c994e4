package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-ayala/edcube-mvp/internal/llm"
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

func analysisRequirement() *types.SectionRequirement {
	return &types.SectionRequirement{
		Title:              "Photosynthesis",
		LearningObjectives: []string{"Explain how plants convert sunlight into energy"},
		ContentKeywords:    []string{"chloroplast"},
		GradeLevel:         5,
	}
}

func TestAnalyzeContentParsesTopics(t *testing.T) {
	client := &fakeLLM{response: `{
		"topics_covered": ["photosynthesis", "chloroplasts"],
		"main_focus": "how plants make food",
		"content_depth": "moderate"
	}`}
	classifier := NewClassifier(client)

	got, err := classifier.AnalyzeContent(context.Background(), "Plant Power", "video about plants", analysisRequirement())
	require.NoError(t, err)
	assert.Equal(t, []string{"photosynthesis", "chloroplasts"}, got.TopicsCovered)
	assert.Equal(t, types.DepthModerate, got.ContentDepth)
}

func TestAnalyzeContentDefaultsUnknownDepth(t *testing.T) {
	client := &fakeLLM{response: `{"topics_covered": ["photosynthesis"]}`}
	classifier := NewClassifier(client)

	got, err := classifier.AnalyzeContent(context.Background(), "Plant Power", "", analysisRequirement())
	require.NoError(t, err)
	assert.Equal(t, types.DepthUnknown, got.ContentDepth)
}

func TestAnalyzeContentPropagatesErrors(t *testing.T) {
	classifier := NewClassifier(&fakeLLM{err: errors.New("model overloaded")})

	_, err := classifier.AnalyzeContent(context.Background(), "Plant Power", "", analysisRequirement())
	assert.Error(t, err)
}

func TestAnalyzeContentRejectsMalformedResponse(t *testing.T) {
	classifier := NewClassifier(&fakeLLM{response: `{"main_focus": "plants"}`})

	_, err := classifier.AnalyzeContent(context.Background(), "Plant Power", "", analysisRequirement())
	assert.Error(t, err)
}

func TestCoverageParsesAssessment(t *testing.T) {
	client := &fakeLLM{response: `{
		"coverage_percentage": 85,
		"matched_objectives": ["Explain how plants convert sunlight into energy"],
		"assessment": "strong match"
	}`}
	classifier := NewClassifier(client)

	got := classifier.Coverage(context.Background(), []string{"photosynthesis"}, analysisRequirement())
	assert.Equal(t, 85.0, got.CoveragePercentage)
	assert.Equal(t, "strong match", got.Assessment)
}

func TestCoverageNeverFails(t *testing.T) {
	classifier := NewClassifier(&fakeLLM{err: errors.New("timeout")})

	got := classifier.Coverage(context.Background(), []string{"photosynthesis"}, analysisRequirement())
	require.NotNil(t, got)
	assert.Equal(t, 50.0, got.CoveragePercentage)
	assert.Equal(t, "unable to assess", got.Assessment)
}

func TestRedundancyEmptyAcceptedIsZero(t *testing.T) {
	// No LLM call should happen; an erroring client proves it.
	classifier := NewClassifier(&fakeLLM{err: errors.New("should not be called")})
	topics := []string{"photosynthesis", "chloroplasts"}

	got := classifier.Redundancy(context.Background(), topics, nil)
	assert.Zero(t, got.RedundancyPercentage)
	assert.Equal(t, topics, got.UniqueNewContent)
}

func TestRedundancyParsesOverlap(t *testing.T) {
	client := &fakeLLM{response: `{
		"redundancy_percentage": 70,
		"overlapping_topics": ["photosynthesis"],
		"unique_new_content": ["light spectrum"]
	}`}
	classifier := NewClassifier(client)
	accepted := []types.Candidate{{ID: "v1", CoveredTopics: []string{"photosynthesis"}}}

	got := classifier.Redundancy(context.Background(), []string{"photosynthesis", "light spectrum"}, accepted)
	assert.Equal(t, 70.0, got.RedundancyPercentage)
	assert.Equal(t, []string{"photosynthesis"}, got.OverlappingTopics)
}

func TestRedundancyFailureAssumesLowOverlap(t *testing.T) {
	classifier := NewClassifier(&fakeLLM{err: errors.New("timeout")})
	accepted := []types.Candidate{{ID: "v1", CoveredTopics: []string{"photosynthesis"}}}
	topics := []string{"light spectrum"}

	got := classifier.Redundancy(context.Background(), topics, accepted)
	assert.Equal(t, 20.0, got.RedundancyPercentage)
	assert.Equal(t, topics, got.UniqueNewContent)
}

func TestRelevanceParsesEvaluation(t *testing.T) {
	client := &fakeLLM{response: `{
		"is_suitable": true,
		"coverage_percentage": 75,
		"quality_score": 8,
		"matches_grade": true,
		"matches_topic": true,
		"reasoning": "well matched worksheet"
	}`}
	classifier := NewClassifier(client)

	got, err := classifier.Relevance(context.Background(), "Photosynthesis fill-in worksheet", analysisRequirement())
	require.NoError(t, err)
	assert.True(t, got.Suitable)
	assert.Equal(t, 75.0, got.CoveragePercentage)
	assert.Equal(t, 8.0, got.QualityScore)
}

func TestRelevancePropagatesErrors(t *testing.T) {
	classifier := NewClassifier(&fakeLLM{response: `{"is_suitable": true}`})

	_, err := classifier.Relevance(context.Background(), "worksheet", analysisRequirement())
	assert.Error(t, err)
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "(none)", formatList(nil))
	assert.Equal(t, "- one\n- two", formatList([]string{"one", "two"}))
}
