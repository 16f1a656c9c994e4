package types

import (
	"time"

	"github.com/google/uuid"
)

// GenerateRequest is the teacher-facing request that starts curriculum
// generation.
type GenerateRequest struct {
	GradeLevel   string `json:"grade_level" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
	Topic        string `json:"topic" validate:"required"`
	Duration     string `json:"duration"`      // "700", "2 weeks", "3 hours"
	DurationUnit string `json:"duration_unit"` // defaults to minutes
	Requirements string `json:"requirements"`  // teacher comments / priorities
}

// Validate checks the request's mandatory fields.
func (r *GenerateRequest) Validate() error {
	return validate.Struct(r)
}

// CurriculumStatus tracks the lifecycle of a curriculum document.
type CurriculumStatus string

// Curriculum lifecycle states
const (
	StatusOutlining CurriculumStatus = "outlining"
	StatusReady     CurriculumStatus = "ready"
	StatusFailed    CurriculumStatus = "failed"
)

// Section is one unit of the curriculum outline, enriched in place as
// resource generation runs complete.
type Section struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	Objectives      []string `json:"learning_objectives"`
	Keywords        []string `json:"content_keywords"`
	MustCover       string   `json:"what_must_be_covered,omitempty"`

	// Populated by resource generation
	VideoResources   []Candidate     `json:"video_resources,omitempty"`
	WorksheetOptions []Candidate     `json:"worksheet_options,omitempty"`
	ActivityOptions  []Candidate     `json:"activity_options,omitempty"`
	QueriesUsed      []string        `json:"search_queries_used,omitempty"`
	CoverageStatus   *CoverageStatus `json:"content_coverage_status,omitempty"`
}

// Requirement builds the selection-run requirement for this section.
func (s *Section) Requirement(gradeLevel int) SectionRequirement {
	return SectionRequirement{
		Title:              s.Title,
		LearningObjectives: s.Objectives,
		ContentKeywords:    s.Keywords,
		MustCover:          s.MustCover,
		GradeLevel:         gradeLevel,
		DurationMinutes:    s.DurationMinutes,
	}
}

// CoverageStatus summarizes a completed selection run for a section.
type CoverageStatus struct {
	CoveragePercentage  float64 `json:"coverage_percentage"`
	IterationsPerformed int     `json:"iterations_performed"`
}

// Curriculum is the persisted curriculum document.
type Curriculum struct {
	ID           uuid.UUID        `json:"id"`
	GradeLevel   int              `json:"grade_level"`
	Subject      string           `json:"subject"`
	Topic        string           `json:"topic"`
	TotalMinutes int              `json:"total_minutes"`
	Requirements string           `json:"requirements,omitempty"`
	Sections     []Section        `json:"sections"`
	Status       CurriculumStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
