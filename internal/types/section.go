// Package types defines the shared data structures for curriculum generation
// and resource curation.
package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for struct-tag validation
var validate = validator.New()

// SectionRequirement is the learning-objective specification driving one
// selection run. It is immutable for the duration of the run.
type SectionRequirement struct {
	Title              string   `json:"title" validate:"required"`
	LearningObjectives []string `json:"learning_objectives"`
	ContentKeywords    []string `json:"content_keywords"`
	MustCover          string   `json:"what_must_be_covered"`
	GradeLevel         int      `json:"grade_level" validate:"gte=0,lte=12"` // 0 = kindergarten
	DurationMinutes    int      `json:"duration_minutes" validate:"gte=0"`
}

// Validate checks that the requirement has the mandatory fields for a
// selection run. Called before any external calls are made.
func (r *SectionRequirement) Validate() error {
	return validate.Struct(r)
}
