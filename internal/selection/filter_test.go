package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

func passingVideoDetails() types.VideoDetails {
	return types.VideoDetails{
		ChannelName:     "Homeschool Pop",
		DurationSeconds: 600,
		ViewCount:       5000,
		LikeCount:       100,
	}
}

func TestVideoFilterAcceptsSolidCandidate(t *testing.T) {
	filter := NewVideoFilter(config.DefaultVideoPolicy())
	cand := videoCandidate(75, 20, passingVideoDetails())
	assert.True(t, filter.Passes(&cand, testRequirement()))
}

func TestVideoFilterGates(t *testing.T) {
	filter := NewVideoFilter(config.DefaultVideoPolicy())
	req := testRequirement()

	tests := []struct {
		name   string
		mutate func(*types.Candidate)
	}{
		{"coverage below floor", func(c *types.Candidate) {
			c.Coverage.CoveragePercentage = 40
		}},
		{"redundancy above ceiling", func(c *types.Candidate) {
			c.Redundancy.RedundancyPercentage = 80
		}},
		{"too short", func(c *types.Candidate) {
			c.Video.DurationSeconds = 90
		}},
		{"past attention span grace", func(c *types.Candidate) {
			c.Video.DurationSeconds = 25 * 60 // grade 5 caps at 15+5 min
		}},
		{"too few views", func(c *types.Candidate) {
			c.Video.ViewCount = 50
		}},
		{"blacklisted channel", func(c *types.Candidate) {
			c.Video.ChannelName = "CrashCourse"
		}},
		{"missing payload", func(c *types.Candidate) {
			c.Video = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := videoCandidate(75, 20, passingVideoDetails())
			tt.mutate(&cand)
			assert.False(t, filter.Passes(&cand, req))
		})
	}
}

func TestWorksheetFilterGates(t *testing.T) {
	filter := NewWorksheetFilter(config.DefaultWorksheetPolicy())
	req := testRequirement()

	good := worksheetCandidate(70, types.WorksheetDetails{
		VisualQuality:    7,
		EducationalValue: 7,
		AgeAppropriate:   true,
	}, nil)
	good.CoveredTopics = []string{"photosynthesis"}
	assert.True(t, filter.Passes(&good, req))

	tests := []struct {
		name   string
		mutate func(*types.Candidate)
	}{
		{"not age appropriate", func(c *types.Candidate) { c.Worksheet.AgeAppropriate = false }},
		{"weak visuals", func(c *types.Candidate) { c.Worksheet.VisualQuality = 3 }},
		{"weak educational value", func(c *types.Candidate) { c.Worksheet.EducationalValue = 2 }},
		{"no topics", func(c *types.Candidate) { c.CoveredTopics = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := worksheetCandidate(70, types.WorksheetDetails{
				VisualQuality:    7,
				EducationalValue: 7,
				AgeAppropriate:   true,
			}, nil)
			cand.CoveredTopics = []string{"photosynthesis"}
			tt.mutate(&cand)
			assert.False(t, filter.Passes(&cand, req))
		})
	}
}

func TestActivityFilterRequiresStructure(t *testing.T) {
	filter := NewActivityFilter(config.DefaultActivityPolicy())
	req := testRequirement()

	structured := activityCandidate(70, 7, types.ActivityDetails{
		Name:        "Bean Sprouting",
		Description: "Grow beans in clear cups to watch roots form.",
		Steps:       []string{"Wet a paper towel", "Add beans", "Observe daily"},
	})
	assert.True(t, filter.Passes(&structured, req))

	missingSteps := activityCandidate(70, 7, types.ActivityDetails{
		Name:        "Bean Sprouting",
		Description: "Grow beans in clear cups.",
	})
	assert.False(t, filter.Passes(&missingSteps, req))

	unnamed := activityCandidate(70, 7, types.ActivityDetails{
		Description: "Grow beans.",
		Steps:       []string{"Wet a towel"},
	})
	assert.False(t, filter.Passes(&unnamed, req))
}

func TestActivityFilterLenientSuitability(t *testing.T) {
	filter := NewActivityFilter(config.DefaultActivityPolicy())
	req := testRequirement()

	base := types.ActivityDetails{
		Name:        "Leaf Rubbing",
		Description: "Make crayon rubbings of different leaves.",
		Materials:   []string{"crayons", "paper"},
	}

	// Fails every lenient branch.
	weak := activityCandidate(20, 3, base)
	weak.Relevance.Suitable = false
	assert.False(t, filter.Passes(&weak, req))

	// Suitable flag alone is enough.
	suitable := activityCandidate(20, 3, base)
	suitable.Relevance.Suitable = true
	assert.True(t, filter.Passes(&suitable, req))

	// Coverage floor alone is enough.
	covered := activityCandidate(55, 3, base)
	assert.True(t, filter.Passes(&covered, req))

	// Quality floor alone is enough.
	polished := activityCandidate(20, 7, base)
	assert.True(t, filter.Passes(&polished, req))
}
