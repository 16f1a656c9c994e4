// Package selection implements the iterative candidate-selection engine:
// query planning, search, semantic classification, threshold filtering,
// multi-factor scoring, redundancy control, and convergence-based iteration,
// instantiated for videos, worksheets, and classroom activities.
package selection

import "fmt"

// Error represents an error that occurs during a selection run.
type Error struct {
	Section string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("selection failed for %q: %s: %v", e.Section, e.Message, e.Cause)
	}
	return fmt.Sprintf("selection failed for %q: %s", e.Section, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
