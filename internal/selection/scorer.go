package selection

import (
	"fmt"
	"math"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/channels"
	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// Scorer computes a bounded relevance score for one classified candidate.
// Deterministic given its numeric inputs; callers may invoke it repeatedly.
type Scorer interface {
	Score(cand *types.Candidate, req *types.SectionRequirement) float64
	Rationale(cand *types.Candidate) string
}

// Video scoring weights. Must sum to 1.0.
const (
	videoWeightCoverage   = 0.25
	videoWeightChannel    = 0.25
	videoWeightPacing     = 0.20
	videoWeightUniqueness = 0.15
	videoWeightDuration   = 0.10
	videoWeightEngagement = 0.05
)

// VideoScorer ranks video candidates on a 0-10 scale.
type VideoScorer struct {
	policy config.VideoPolicy
}

// NewVideoScorer creates a video scorer with the given policy.
func NewVideoScorer(policy config.VideoPolicy) *VideoScorer {
	return &VideoScorer{policy: policy}
}

func (s *VideoScorer) Score(cand *types.Candidate, req *types.SectionRequirement) float64 {
	v := cand.Video
	if v == nil {
		return 0
	}

	coverage := cand.CoveragePercentage() / 100
	channel := channels.DemographicScore(v.ChannelName, req.GradeLevel) / 4.0
	pacing := pacingScore(v.WPM, req.GradeLevel)
	uniqueness := 1 - cand.RedundancyPercentage()/100
	duration := durationFitScore(v.DurationSeconds, req, s.policy)
	engagement := engagementScore(v.ViewCount, v.LikeCount)

	weighted := coverage*videoWeightCoverage +
		channel*videoWeightChannel +
		pacing*videoWeightPacing +
		uniqueness*videoWeightUniqueness +
		duration*videoWeightDuration +
		engagement*videoWeightEngagement

	return clamp(weighted*10, 0, 10)
}

// Rationale explains why an accepted video ranked where it did.
func (s *VideoScorer) Rationale(cand *types.Candidate) string {
	v := cand.Video
	if v == nil {
		return ""
	}

	parts := []string{fmt.Sprintf("%.0f%% coverage of section objectives", cand.CoveragePercentage())}

	switch channels.TierOf(v.ChannelName) {
	case channels.TierKidFocused:
		parts = append(parts, "trusted kid-focused channel")
	case channels.TierEducational:
		parts = append(parts, "established educational channel")
	}
	if v.WPM > 0 {
		parts = append(parts, fmt.Sprintf("%.0f wpm pacing", v.WPM))
	}
	if cand.RedundancyPercentage() <= 20 {
		parts = append(parts, "mostly new material for this section")
	}
	return strings.Join(parts, ", ")
}

// pacingScore bands words-per-minute against the grade's target range.
// Full credit inside the range, partial credit within 20 wpm of either
// edge, near-zero beyond. An unknown pace (no transcript) scores neutral.
func pacingScore(wpm float64, gradeLevel int) float64 {
	if wpm <= 0 {
		return 0.5
	}
	band := config.WPMRangeForGrade(gradeLevel)
	switch {
	case wpm >= band.Min && wpm <= band.Max:
		return 1.0
	case wpm > band.Max && wpm <= band.Max+20:
		return 0.6
	case wpm > band.Max+20:
		return 0.0
	case wpm >= band.Min-20:
		return 0.5
	default:
		return 0.2
	}
}

// durationFitScore blends two length signals: fit inside the grade's
// attention span (with reduced credit in the grace band past it and for
// videos shorter than the span floor), and closeness to the section's
// allotted time (full credit within 5 minutes, half within 10). Sections
// without a time allocation score on the attention span alone.
func durationFitScore(durationSeconds int, req *types.SectionRequirement, policy config.VideoPolicy) float64 {
	span := config.AttentionSpanForGrade(req.GradeLevel)
	minutes := float64(durationSeconds) / 60.0

	var spanScore float64
	switch {
	case minutes >= span.Min && minutes <= span.Max:
		spanScore = 1.0
	case minutes > span.Max && minutes <= span.Max+policy.DurationGraceMin:
		spanScore = 0.6
	case minutes < span.Min && durationSeconds > policy.MinDurationSeconds:
		spanScore = 0.7
	default:
		spanScore = 0.3
	}

	if req.DurationMinutes <= 0 {
		return spanScore
	}

	sectionScore := 0.0
	switch diff := math.Abs(minutes - float64(req.DurationMinutes)); {
	case diff <= 5:
		sectionScore = 1.0
	case diff <= 10:
		sectionScore = 0.5
	}
	return (spanScore + sectionScore) / 2
}

// engagementScore bands likes-per-1000-views around the range observed for
// solid educational content. Too few likes suggests low quality; too many
// often signals entertainment rather than instruction.
func engagementScore(viewCount, likeCount int64) float64 {
	if viewCount <= 0 {
		return 0.25
	}
	likesPerThousand := float64(likeCount) / float64(viewCount) * 1000
	switch {
	case likesPerThousand >= 10 && likesPerThousand <= 30:
		return 1.0
	case likesPerThousand >= 5 && likesPerThousand <= 50:
		return 0.5
	default:
		return 0.25
	}
}

// Worksheet scoring weights. Must sum to 1.0 before bonuses.
const (
	worksheetWeightVisual      = 0.25
	worksheetWeightEducational = 0.25
	worksheetWeightCoverage    = 0.30
	worksheetWeightLLMQuality  = 0.20

	worksheetBonus = 5.0
)

// WorksheetScorer ranks worksheet candidates on a 0-100 scale, with flat
// bonuses for grade match, topic match, and visual elements.
type WorksheetScorer struct{}

// NewWorksheetScorer creates a worksheet scorer.
func NewWorksheetScorer() *WorksheetScorer {
	return &WorksheetScorer{}
}

func (s *WorksheetScorer) Score(cand *types.Candidate, req *types.SectionRequirement) float64 {
	w := cand.Worksheet
	if w == nil {
		return 0
	}

	visual := float64(w.VisualQuality) / 10
	educational := float64(w.EducationalValue) / 10
	coverage := cand.CoveragePercentage() / 100
	llmQuality := 0.0
	if cand.Relevance != nil {
		llmQuality = cand.Relevance.QualityScore / 10
	}

	score := 100 * (visual*worksheetWeightVisual +
		educational*worksheetWeightEducational +
		coverage*worksheetWeightCoverage +
		llmQuality*worksheetWeightLLMQuality)

	if cand.Relevance != nil && cand.Relevance.MatchesGrade {
		score += worksheetBonus
	}
	if cand.Relevance != nil && cand.Relevance.MatchesTopic {
		score += worksheetBonus
	}
	if w.HasImagesOrArt {
		score += worksheetBonus
	}

	return clamp(score, 0, 100)
}

func (s *WorksheetScorer) Rationale(cand *types.Candidate) string {
	w := cand.Worksheet
	if w == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("%.0f%% coverage of section objectives", cand.CoveragePercentage())}
	if w.VisualQuality >= 7 {
		parts = append(parts, "strong visual presentation")
	}
	if w.EducationalValue >= 7 {
		parts = append(parts, "high educational value")
	}
	if cand.Relevance != nil && cand.Relevance.MatchesGrade {
		parts = append(parts, "matches the target grade")
	}
	return strings.Join(parts, ", ")
}

// Activity scoring blend: relevance (coverage + LLM quality) dominates,
// structural completeness fills out the rest.
const (
	activityWeightRelevance  = 0.7
	activityWeightStructural = 0.3

	activityStructuralMax = 4.0
)

// ActivityScorer ranks activity candidates on a 0-10 scale.
type ActivityScorer struct{}

// NewActivityScorer creates an activity scorer.
func NewActivityScorer() *ActivityScorer {
	return &ActivityScorer{}
}

func (s *ActivityScorer) Score(cand *types.Candidate, req *types.SectionRequirement) float64 {
	a := cand.Activity
	if a == nil {
		return 0
	}

	quality := 0.0
	if cand.Relevance != nil {
		quality = cand.Relevance.QualityScore
	}
	relevance := cand.CoveragePercentage()/10*0.5 + quality*0.5

	structural := 0.0
	if len(a.Steps) > 0 {
		structural += 2.0
	}
	if len(a.Materials) > 0 {
		structural += 1.0
	}
	if a.Duration != "" {
		structural += 0.5
	}
	if len(a.LearningObjectives) > 0 {
		structural += 0.5
	}

	score := relevance*activityWeightRelevance +
		structural/activityStructuralMax*10*activityWeightStructural

	return clamp(score, 0, 10)
}

func (s *ActivityScorer) Rationale(cand *types.Candidate) string {
	a := cand.Activity
	if a == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("%.0f%% coverage of section objectives", cand.CoveragePercentage())}
	if len(a.Steps) > 0 {
		parts = append(parts, fmt.Sprintf("%d clear steps", len(a.Steps)))
	}
	if len(a.Materials) > 0 {
		parts = append(parts, "materials list included")
	}
	if cand.Relevance != nil && cand.Relevance.Suitable {
		parts = append(parts, "judged suitable for the classroom")
	}
	return strings.Join(parts, ", ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
