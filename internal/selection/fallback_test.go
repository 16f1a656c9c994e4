package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

func TestFallbackActivitiesRankByStructure(t *testing.T) {
	pool := []types.Candidate{
		activityCandidate(10, 2, types.ActivityDetails{
			Name:        "Sparse",
			Description: "A thin writeup.",
			Steps:       []string{"one"},
		}),
		activityCandidate(10, 2, types.ActivityDetails{
			Name:        "Rich",
			Description: "A detailed plan.",
			Steps:       []string{"one", "two", "three"},
			Materials:   []string{"paper"},
		}),
		activityCandidate(10, 2, types.ActivityDetails{
			Name:        "Middling",
			Description: "Some steps.",
			Steps:       []string{"one", "two"},
		}),
	}

	got := fallbackTopActivities(pool)
	require.Len(t, got, 3)
	assert.Equal(t, "Rich", got[0].Activity.Name)
	assert.Equal(t, "Middling", got[1].Activity.Name)
	assert.Equal(t, "Sparse", got[2].Activity.Name)
	for _, cand := range got {
		assert.Equal(t, fallbackScore, cand.Score)
		assert.NotEmpty(t, cand.WhySelected)
	}
}

func TestFallbackActivitiesSkipsUnusableEntries(t *testing.T) {
	pool := []types.Candidate{
		activityCandidate(10, 2, types.ActivityDetails{
			Description: "No name here.",
			Steps:       []string{"one"},
		}),
		activityCandidate(10, 2, types.ActivityDetails{
			Name:  "No description",
			Steps: []string{"one"},
		}),
		{ID: "not-an-activity"},
		activityCandidate(10, 2, types.ActivityDetails{
			Name:        "Usable",
			Description: "Complete enough.",
		}),
	}

	got := fallbackTopActivities(pool)
	require.Len(t, got, 1)
	assert.Equal(t, "Usable", got[0].Activity.Name)
}

func TestFallbackActivitiesCapsAtThree(t *testing.T) {
	var pool []types.Candidate
	for i := 0; i < 6; i++ {
		pool = append(pool, activityCandidate(10, 2, types.ActivityDetails{
			Name:        "Activity",
			Description: "Filler.",
		}))
	}
	assert.Len(t, fallbackTopActivities(pool), fallbackCount)
}

func TestFallbackWorksheetsRankByQualitySum(t *testing.T) {
	pool := []types.Candidate{
		worksheetCandidate(10, types.WorksheetDetails{VisualQuality: 3, EducationalValue: 4}, nil),
		worksheetCandidate(10, types.WorksheetDetails{VisualQuality: 9, EducationalValue: 8}, nil),
		{ID: "not-a-worksheet"},
		worksheetCandidate(10, types.WorksheetDetails{VisualQuality: 6, EducationalValue: 6}, nil),
	}

	got := fallbackTopWorksheets(pool)
	require.Len(t, got, 3)
	assert.Equal(t, 17, got[0].Worksheet.VisualQuality+got[0].Worksheet.EducationalValue)
	assert.Equal(t, 12, got[1].Worksheet.VisualQuality+got[1].Worksheet.EducationalValue)
	assert.Equal(t, 7, got[2].Worksheet.VisualQuality+got[2].Worksheet.EducationalValue)
	for _, cand := range got {
		assert.Equal(t, fallbackScore, cand.Score)
	}
}

func TestFallbackLeavesPoolUntouched(t *testing.T) {
	pool := []types.Candidate{
		worksheetCandidate(10, types.WorksheetDetails{VisualQuality: 5, EducationalValue: 5}, nil),
	}
	_ = fallbackTopWorksheets(pool)
	assert.Zero(t, pool[0].Score)
	assert.Empty(t, pool[0].WhySelected)
}
