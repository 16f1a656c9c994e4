package selection

import (
	"sort"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

// Lenient variants never come back empty-handed from a thin result set:
// when strict filtering starves the run, the raw pool is re-ranked by a
// cheap structural proxy and the best few are taken at a fixed score.
const (
	fallbackCount = 3
	fallbackScore = 7.0
)

// fallbackTopActivities ranks the unfiltered pool by structural richness
// (step count, plus a flat bonus for a materials list) and returns up to
// three, each at the fixed fallback score. Entries missing a name or
// description are never eligible.
func fallbackTopActivities(pool []types.Candidate) []types.Candidate {
	var eligible []types.Candidate
	for _, cand := range pool {
		a := cand.Activity
		if a == nil {
			continue
		}
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Description) == "" {
			continue
		}
		eligible = append(eligible, cand)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return activityProxy(&eligible[i]) > activityProxy(&eligible[j])
	})

	return takeFallback(eligible, "best available activity despite limited search results")
}

func activityProxy(cand *types.Candidate) int {
	score := len(cand.Activity.Steps)
	if len(cand.Activity.Materials) > 0 {
		score += 10
	}
	return score
}

// fallbackTopWorksheets ranks the unfiltered pool by the sum of its visual
// and educational ratings, the closest structural proxy worksheets have.
func fallbackTopWorksheets(pool []types.Candidate) []types.Candidate {
	var eligible []types.Candidate
	for _, cand := range pool {
		if cand.Worksheet == nil {
			continue
		}
		eligible = append(eligible, cand)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		wi, wj := eligible[i].Worksheet, eligible[j].Worksheet
		return wi.VisualQuality+wi.EducationalValue > wj.VisualQuality+wj.EducationalValue
	})

	return takeFallback(eligible, "best available worksheet despite limited search results")
}

func takeFallback(eligible []types.Candidate, rationale string) []types.Candidate {
	if len(eligible) > fallbackCount {
		eligible = eligible[:fallbackCount]
	}
	out := make([]types.Candidate, len(eligible))
	for i, cand := range eligible {
		cand.Score = fallbackScore
		cand.WhySelected = rationale
		out[i] = cand
	}
	return out
}
