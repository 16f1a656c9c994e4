package types

// ContentDepth describes how deeply a candidate treats its subject
type ContentDepth string

// ContentDepth values returned by the content analysis step
const (
	DepthSurface  ContentDepth = "surface"
	DepthModerate ContentDepth = "moderate"
	DepthDeep     ContentDepth = "deep"
	DepthUnknown  ContentDepth = "unknown"
)

// Candidate is one retrieved content item under evaluation for a section.
// Exactly one of Video, Worksheet, or Activity is non-nil, depending on the
// variant that produced it; the remaining fields are shared across variants.
type Candidate struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Populated by the classify step
	CoveredTopics []string     `json:"topics_covered,omitempty"`
	MainFocus     string       `json:"main_focus,omitempty"`
	Depth         ContentDepth `json:"content_depth,omitempty"`

	// Populated by coverage/redundancy analysis against the section
	Coverage   *CoverageAnalysis   `json:"content_coverage,omitempty"`
	Redundancy *RedundancyAnalysis `json:"redundancy_analysis,omitempty"`
	Relevance  *Relevance          `json:"relevance_data,omitempty"`

	// Final ranking value. Scale is variant-specific: 0-10 for videos and
	// activities, 0-100 for worksheets.
	Score float64 `json:"score"`

	// WhySelected is a short rationale, set when the candidate is accepted.
	WhySelected string `json:"why_selected,omitempty"`

	// Variant payloads
	Video     *VideoDetails     `json:"video,omitempty"`
	Worksheet *WorksheetDetails `json:"worksheet,omitempty"`
	Activity  *ActivityDetails  `json:"activity,omitempty"`
}

// CoveragePercentage returns the candidate's coverage, or 0 if unanalyzed.
func (c *Candidate) CoveragePercentage() float64 {
	if c.Coverage == nil {
		return 0
	}
	return c.Coverage.CoveragePercentage
}

// RedundancyPercentage returns the candidate's redundancy, or 0 if unanalyzed.
func (c *Candidate) RedundancyPercentage() float64 {
	if c.Redundancy == nil {
		return 0
	}
	return c.Redundancy.RedundancyPercentage
}

// VideoDetails holds video-specific metadata from the video source API.
type VideoDetails struct {
	ChannelName       string  `json:"channel_name"`
	Description       string  `json:"description,omitempty"`
	DurationSeconds   int     `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted,omitempty"`
	ViewCount         int64   `json:"view_count"`
	LikeCount         int64   `json:"like_count"`
	VideoURL          string  `json:"video_url"`
	ThumbnailURL      string  `json:"thumbnail_url,omitempty"`
	WPM               float64 `json:"wpm,omitempty"` // 0 = no transcript
	HasTranscript     bool    `json:"transcript_available"`
}

// WorksheetDetails holds worksheet-image metadata and the quality facts
// produced by visual analysis.
type WorksheetDetails struct {
	ImageURL         string `json:"image_url"`
	SourceURL        string `json:"source_url"`
	ThumbnailURL     string `json:"thumbnail_url,omitempty"`
	GradeLevel       string `json:"grade_level,omitempty"`
	VisualQuality    int    `json:"visual_quality"`    // 0-10
	EducationalValue int    `json:"educational_value"` // 0-10
	AgeAppropriate   bool   `json:"is_age_appropriate"`
	HasImagesOrArt   bool   `json:"has_images_or_art"`
}

// ActivityDetails holds an activity extracted from a lesson-plan page.
type ActivityDetails struct {
	Name               string   `json:"name"`
	Type               string   `json:"type,omitempty"`
	Description        string   `json:"description"`
	Materials          []string `json:"materials,omitempty"`
	Steps              []string `json:"steps,omitempty"`
	Duration           string   `json:"duration,omitempty"`
	LearningObjectives []string `json:"learning_objectives,omitempty"`
	SourceURL          string   `json:"source_url"`
}

// CoverageAnalysis reports how well a candidate covers a section's
// learning objectives.
type CoverageAnalysis struct {
	CoveragePercentage float64  `json:"coverage_percentage"`
	MatchedObjectives  []string `json:"matched_objectives,omitempty"`
	MissingContent     []string `json:"missing_content,omitempty"`
	ExtraContent       []string `json:"extra_content,omitempty"`
	Assessment         string   `json:"assessment,omitempty"`
}

// RedundancyAnalysis reports topical overlap between a candidate and the
// already-accepted set for the same section.
type RedundancyAnalysis struct {
	RedundancyPercentage float64  `json:"redundancy_percentage"`
	UniqueNewContent     []string `json:"unique_new_content,omitempty"`
	OverlappingTopics    []string `json:"overlapping_topics,omitempty"`
}

// Relevance is the LLM suitability evaluation for worksheet and activity
// candidates.
type Relevance struct {
	Suitable           bool    `json:"is_suitable"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	QualityScore       float64 `json:"quality_score"` // 0-10
	MatchesGrade       bool    `json:"matches_grade"`
	MatchesTopic       bool    `json:"matches_topic"`
	Reasoning          string  `json:"reasoning,omitempty"`
}

// TopicAnalysis is the raw classify result for one candidate.
type TopicAnalysis struct {
	TopicsCovered []string     `json:"topics_covered"`
	MainFocus     string       `json:"main_focus"`
	ContentDepth  ContentDepth `json:"content_depth"`
}
