package config

import (
	"strconv"
	"strings"
)

// VideoPolicy holds the hard thresholds for video candidate filtering.
// Instances are immutable; construct with DefaultVideoPolicy and pass
// explicitly so multiple variants can run concurrently with different
// thresholds.
type VideoPolicy struct {
	MinCoverage        float64 // percent
	MaxRedundancy      float64 // percent
	MinViewCount       int64
	MinDurationSeconds int
	MaxDurationSeconds int
	DurationGraceMin   float64 // minutes past attention span still allowed
	ResultsPerQuery    int64
}

// DefaultVideoPolicy returns the calibrated video filtering thresholds.
func DefaultVideoPolicy() VideoPolicy {
	return VideoPolicy{
		MinCoverage:        60,
		MaxRedundancy:      60,
		MinViewCount:       100, // lenient absolute quality gate
		MinDurationSeconds: 120,
		MaxDurationSeconds: 1800,
		DurationGraceMin:   5,
		ResultsPerQuery:    5,
	}
}

// WorksheetPolicy holds the quality gates for worksheet candidates.
type WorksheetPolicy struct {
	MinVisualQuality    int // 0-10
	MinEducationalValue int // 0-10
	MaxImagesPerSearch  int64
	AnalysisWorkers     int
}

// DefaultWorksheetPolicy returns the calibrated worksheet thresholds.
func DefaultWorksheetPolicy() WorksheetPolicy {
	return WorksheetPolicy{
		MinVisualQuality:    5,
		MinEducationalValue: 5,
		MaxImagesPerSearch:  6,
		AnalysisWorkers:     3,
	}
}

// ActivityPolicy holds the gates for activity candidates. Activity filtering
// is lenient: a candidate passes the suitability check if it is flagged
// suitable OR meets the coverage or quality floor.
type ActivityPolicy struct {
	LenientMinCoverage float64 // percent
	LenientMinQuality  float64 // 0-10
	MaxPagesPerSearch  int64
	CrawlWorkers       int
}

// DefaultActivityPolicy returns the calibrated activity thresholds.
func DefaultActivityPolicy() ActivityPolicy {
	return ActivityPolicy{
		LenientMinCoverage: 40,
		LenientMinQuality:  6,
		MaxPagesPerSearch:  8,
		CrawlWorkers:       4,
	}
}

// WPMRange is an inclusive words-per-minute band.
type WPMRange struct {
	Min float64
	Max float64
}

// WPMRangeForGrade returns the target narration pace for a grade level.
// Grades K-5 get the elementary band, 6-8 middle school, 9+ high school.
func WPMRangeForGrade(grade int) WPMRange {
	switch {
	case grade <= 5:
		return WPMRange{Min: 100, Max: 130}
	case grade <= 8:
		return WPMRange{Min: 130, Max: 160}
	default:
		return WPMRange{Min: 160, Max: 180}
	}
}

// AttentionSpan is the grade-banded video length window, in minutes.
type AttentionSpan struct {
	Min float64
	Max float64
}

// attentionSpans maps grade level to the attention-span window.
var attentionSpans = map[int]AttentionSpan{
	1: {5, 7},
	2: {5, 8},
	3: {8, 12},
	4: {10, 15},
	5: {10, 15},
	6: {12, 18},
}

// AttentionSpanForGrade returns the attention-span window for a grade,
// defaulting to (10, 15) minutes for grades without a calibrated entry.
func AttentionSpanForGrade(grade int) AttentionSpan {
	if span, ok := attentionSpans[grade]; ok {
		return span
	}
	return AttentionSpan{10, 15}
}

// ParseGradeLevel parses a grade-level string such as "5", "K", "K-5" or
// "3-4" into an integer (K = 0). Range formats resolve to the lower bound.
// Unparseable input defaults to grade 5.
func ParseGradeLevel(s string) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 5
	}
	if idx := strings.Index(s, "-"); idx >= 0 {
		s = s[:idx]
	}
	if strings.HasPrefix(s, "k") {
		return 0
	}
	grade, err := strconv.Atoi(s)
	if err != nil || grade < 0 {
		return 5
	}
	return grade
}
