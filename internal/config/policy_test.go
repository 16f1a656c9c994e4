package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGradeLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"5", 5},
		{"K", 0},
		{"k", 0},
		{"K-5", 0},
		{"3-4", 3},
		{" 2 ", 2},
		{"", 5},
		{"kindergarten", 0},
		{"twelfth", 5},
		{"-3", 5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGradeLevel(tt.input))
		})
	}
}

func TestWPMRangeForGrade(t *testing.T) {
	assert.Equal(t, WPMRange{Min: 100, Max: 130}, WPMRangeForGrade(0))
	assert.Equal(t, WPMRange{Min: 100, Max: 130}, WPMRangeForGrade(5))
	assert.Equal(t, WPMRange{Min: 130, Max: 160}, WPMRangeForGrade(6))
	assert.Equal(t, WPMRange{Min: 160, Max: 180}, WPMRangeForGrade(9))
}

func TestAttentionSpanForGrade(t *testing.T) {
	assert.Equal(t, AttentionSpan{5, 7}, AttentionSpanForGrade(1))
	assert.Equal(t, AttentionSpan{12, 18}, AttentionSpanForGrade(6))
	// Grades without a calibrated entry fall back to the default window.
	assert.Equal(t, AttentionSpan{10, 15}, AttentionSpanForGrade(0))
	assert.Equal(t, AttentionSpan{10, 15}, AttentionSpanForGrade(9))
}

func TestDefaultPoliciesAreInternallyConsistent(t *testing.T) {
	video := DefaultVideoPolicy()
	assert.Less(t, video.MinDurationSeconds, video.MaxDurationSeconds)
	assert.Positive(t, video.ResultsPerQuery)

	worksheet := DefaultWorksheetPolicy()
	assert.Positive(t, worksheet.AnalysisWorkers)

	activity := DefaultActivityPolicy()
	assert.Positive(t, activity.CrawlWorkers)
	assert.LessOrEqual(t, activity.LenientMinQuality, 10.0)
}
