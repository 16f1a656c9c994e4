package selection

import (
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/channels"
	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// Filter applies hard pass/fail predicates to a classified candidate.
// Failure is non-fatal; the candidate is simply excluded from the run.
type Filter interface {
	Passes(cand *types.Candidate, req *types.SectionRequirement) bool
}

// VideoFilter enforces the strict video gates: coverage floor, redundancy
// ceiling, duration sanity against the grade's attention span, a lenient
// absolute view-count floor, and the channel blacklist.
type VideoFilter struct {
	policy config.VideoPolicy
}

// NewVideoFilter creates a video filter with the given thresholds.
func NewVideoFilter(policy config.VideoPolicy) *VideoFilter {
	return &VideoFilter{policy: policy}
}

func (f *VideoFilter) Passes(cand *types.Candidate, req *types.SectionRequirement) bool {
	v := cand.Video
	if v == nil {
		return false
	}

	if !channels.Appropriate(v.ChannelName) {
		return false
	}
	if v.ViewCount < f.policy.MinViewCount {
		return false
	}
	if v.DurationSeconds <= f.policy.MinDurationSeconds {
		return false
	}
	if v.DurationSeconds > f.policy.MaxDurationSeconds {
		return false
	}

	// The grade's attention span caps duration harder than the absolute
	// ceiling, with a few minutes of grace.
	span := config.AttentionSpanForGrade(req.GradeLevel)
	if float64(v.DurationSeconds) > (span.Max+f.policy.DurationGraceMin)*60 {
		return false
	}

	if cand.CoveragePercentage() < f.policy.MinCoverage {
		return false
	}
	if cand.RedundancyPercentage() > f.policy.MaxRedundancy {
		return false
	}
	return true
}

// WorksheetFilter enforces the worksheet quality gates: age appropriateness,
// visual and educational floors, and a non-empty topic set.
type WorksheetFilter struct {
	policy config.WorksheetPolicy
}

// NewWorksheetFilter creates a worksheet filter with the given thresholds.
func NewWorksheetFilter(policy config.WorksheetPolicy) *WorksheetFilter {
	return &WorksheetFilter{policy: policy}
}

func (f *WorksheetFilter) Passes(cand *types.Candidate, req *types.SectionRequirement) bool {
	w := cand.Worksheet
	if w == nil {
		return false
	}
	if !w.AgeAppropriate {
		return false
	}
	if w.VisualQuality < f.policy.MinVisualQuality {
		return false
	}
	if w.EducationalValue < f.policy.MinEducationalValue {
		return false
	}
	if len(cand.CoveredTopics) == 0 {
		return false
	}
	return true
}

// ActivityFilter enforces structural completeness plus a lenient
// OR-combined suitability check: the LLM marked it suitable, or coverage
// clears a soft floor, or quality clears a soft floor.
type ActivityFilter struct {
	policy config.ActivityPolicy
}

// NewActivityFilter creates an activity filter with the given thresholds.
func NewActivityFilter(policy config.ActivityPolicy) *ActivityFilter {
	return &ActivityFilter{policy: policy}
}

func (f *ActivityFilter) Passes(cand *types.Candidate, req *types.SectionRequirement) bool {
	a := cand.Activity
	if a == nil {
		return false
	}
	if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Description) == "" {
		return false
	}
	if len(a.Steps) == 0 && len(a.Materials) == 0 {
		return false
	}

	if cand.Relevance != nil && cand.Relevance.Suitable {
		return true
	}
	if cand.CoveragePercentage() >= f.policy.LenientMinCoverage {
		return true
	}
	if cand.Relevance != nil && cand.Relevance.QualityScore >= f.policy.LenientMinQuality {
		return true
	}
	return false
}
