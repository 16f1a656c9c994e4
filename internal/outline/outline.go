// Package outline implements the first generation phase: turning a teacher
// request into a curriculum outline of sections with learning objectives,
// content keywords, and time allocations.
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/prompts"
	"github.com/m-ayala/edcube-mvp/internal/schemas"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// DefaultTotalMinutes is used when the request carries no parseable time
// budget.
const DefaultTotalMinutes = 300

// Generator produces curriculum outlines through the LLM.
type Generator struct {
	client llm.Client
}

// NewGenerator creates an outline generator.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate validates the request and produces a new curriculum document
// with an outline of sections. Resource lists start empty; the population
// phases fill them in later.
func (g *Generator) Generate(ctx context.Context, req *types.GenerateRequest) (*types.Curriculum, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}

	gradeLevel := config.ParseGradeLevel(req.GradeLevel)
	totalMinutes := NormalizeDuration(req.Duration, req.DurationUnit)

	template := prompts.MustGet("outline.json", "outline")
	prompt := prompts.Format(template, map[string]string{
		"GradeLevel":   req.GradeLevel,
		"Subject":      req.Subject,
		"Topic":        req.Topic,
		"TotalMinutes": strconv.Itoa(totalMinutes),
		"Requirements": req.Requirements,
	})
	system := prompts.MustGet("outline.json", "outline-system")

	raw, err := g.client.GenerateJSON(ctx, system, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}
	if err := schemas.ValidateResponse(schemas.Outline, raw); err != nil {
		return nil, fmt.Errorf("outline generation returned malformed response: %w", err)
	}

	var response struct {
		Sections []types.Section `json:"sections"`
	}
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, fmt.Errorf("failed to parse outline response: %w", err)
	}
	if len(response.Sections) == 0 {
		return nil, fmt.Errorf("outline generation produced no sections")
	}

	now := time.Now().UTC()
	return &types.Curriculum{
		ID:           uuid.New(),
		GradeLevel:   gradeLevel,
		Subject:      req.Subject,
		Topic:        req.Topic,
		TotalMinutes: totalMinutes,
		Requirements: req.Requirements,
		Sections:     response.Sections,
		Status:       types.StatusReady,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// minutesPerUnit converts a duration unit into instructional minutes. A
// school day counts one subject hour; a week counts five.
var minutesPerUnit = map[string]int{
	"minute": 1,
	"hour":   60,
	"day":    60,
	"week":   300,
	"month":  1200,
}

// NormalizeDuration turns free-form time budgets such as "700", "2 weeks",
// or "3 hours" into instructional minutes. The unit argument applies when
// the duration itself is a bare number; unparseable input falls back to
// DefaultTotalMinutes.
func NormalizeDuration(duration, unit string) int {
	duration = strings.TrimSpace(strings.ToLower(duration))
	if duration == "" {
		return DefaultTotalMinutes
	}

	amount := 0
	unitWord := strings.TrimSpace(strings.ToLower(unit))

	fields := strings.Fields(duration)
	parsed, err := strconv.Atoi(fields[0])
	if err != nil || parsed <= 0 {
		return DefaultTotalMinutes
	}
	amount = parsed
	if len(fields) > 1 {
		unitWord = fields[1]
	}

	if unitWord == "" {
		return amount
	}
	unitWord = strings.TrimSuffix(unitWord, "s")
	perUnit, ok := minutesPerUnit[unitWord]
	if !ok {
		return DefaultTotalMinutes
	}
	return amount * perUnit
}
