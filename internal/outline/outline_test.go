package outline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
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

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		unit     string
		want     int
	}{
		{"bare minutes", "700", "", 700},
		{"bare number with unit arg", "2", "week", 600},
		{"inline weeks", "2 weeks", "", 600},
		{"inline hours", "3 hours", "", 180},
		{"inline days", "5 days", "", 300},
		{"singular unit", "1 month", "", 1200},
		{"empty input", "", "", DefaultTotalMinutes},
		{"garbage", "a fortnight", "", DefaultTotalMinutes},
		{"unknown unit", "2 sprints", "", DefaultTotalMinutes},
		{"zero amount", "0 weeks", "", DefaultTotalMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDuration(tt.duration, tt.unit))
		})
	}
}

const outlineResponse = `{
	"sections": [
		{
			"title": "What Is Photosynthesis",
			"description": "Introduce the core idea.",
			"duration_minutes": 45,
			"learning_objectives": ["Explain how plants convert sunlight into energy"],
			"content_keywords": ["chloroplast", "sunlight"],
			"what_must_be_covered": "The inputs and outputs of photosynthesis"
		},
		{
			"title": "Light and Leaves",
			"duration_minutes": 45,
			"learning_objectives": ["Describe the role of leaves"]
		}
	]
}`

func outlineRequest() *types.GenerateRequest {
	return &types.GenerateRequest{
		GradeLevel: "5",
		Subject:    "Science",
		Topic:      "Photosynthesis",
		Duration:   "2 hours",
	}
}

func TestGenerateBuildsCurriculum(t *testing.T) {
	gen := NewGenerator(&fakeLLM{response: outlineResponse})

	got, err := gen.Generate(context.Background(), outlineRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 5, got.GradeLevel)
	assert.Equal(t, "Photosynthesis", got.Topic)
	assert.Equal(t, 120, got.TotalMinutes)
	assert.Equal(t, types.StatusReady, got.Status)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "What Is Photosynthesis", got.Sections[0].Title)
	assert.Empty(t, got.Sections[0].VideoResources)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGenerateRejectsIncompleteRequest(t *testing.T) {
	gen := NewGenerator(&fakeLLM{response: outlineResponse})

	_, err := gen.Generate(context.Background(), &types.GenerateRequest{Subject: "Science"})
	assert.Error(t, err)
}

func TestGeneratePropagatesLLMFailure(t *testing.T) {
	gen := NewGenerator(&fakeLLM{err: errors.New("model overloaded")})

	_, err := gen.Generate(context.Background(), outlineRequest())
	assert.Error(t, err)
}

func TestGenerateRejectsMalformedOutline(t *testing.T) {
	gen := NewGenerator(&fakeLLM{response: `{"sections": []}`})

	_, err := gen.Generate(context.Background(), outlineRequest())
	assert.Error(t, err)
}
