// Package queryplan turns a section requirement into prioritized search
// queries and owns the iteration-to-query-subset policy of the selection
// engine.
package queryplan

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/prompts"
	"github.com/m-ayala/edcube-mvp/internal/schemas"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// maxQueryLength truncates over-long generated queries; search APIs degrade
// on verbose queries.
const maxQueryLength = 60

// Planner generates and caches the query set for one selection run.
// Query wording is delegated to the LLM and generated once per section;
// Plan is a pure selection over the cached list.
type Planner struct {
	client          llm.Client
	teacherComments string

	cached []types.SearchQuery
}

// NewPlanner creates a planner for one section run.
func NewPlanner(client llm.Client, teacherComments string) *Planner {
	return &Planner{client: client, teacherComments: teacherComments}
}

// Plan returns the query subset for the given iteration (1-based):
//
//	iteration 1: primary + secondary
//	iteration 2: tertiary + quaternary
//	iteration 3+: the full set (cast wider net)
//
// An empty subset falls back to the full set. The full set is generated on
// first use and cached for the run.
func (p *Planner) Plan(ctx context.Context, req *types.SectionRequirement, iteration int) ([]types.SearchQuery, error) {
	all, err := p.queries(ctx, req)
	if err != nil {
		return nil, err
	}

	var want []types.QueryPriority
	switch iteration {
	case 1:
		want = []types.QueryPriority{types.PriorityPrimary, types.PrioritySecondary}
	case 2:
		want = []types.QueryPriority{types.PriorityTertiary, types.PriorityQuaternary}
	default:
		return all, nil
	}

	var subset []types.SearchQuery
	for _, q := range all {
		for _, priority := range want {
			if q.Priority == priority {
				subset = append(subset, q)
				break
			}
		}
	}
	if len(subset) == 0 {
		return all, nil
	}
	return subset, nil
}

// queries generates the full query set, caching the result.
func (p *Planner) queries(ctx context.Context, req *types.SectionRequirement) ([]types.SearchQuery, error) {
	if p.cached != nil {
		return p.cached, nil
	}

	generated, err := p.generate(ctx, req)
	if err != nil {
		log.Printf("query generation failed for %q, using fallback queries: %v", req.Title, err)
		generated = FallbackQueries(req)
	}
	if len(generated) == 0 {
		generated = FallbackQueries(req)
	}

	for i := range generated {
		generated[i].Query = llm.Truncate(generated[i].Query, maxQueryLength)
	}

	p.cached = generated
	return p.cached, nil
}

// generate asks the LLM for prioritized queries.
func (p *Planner) generate(ctx context.Context, req *types.SectionRequirement) ([]types.SearchQuery, error) {
	template := prompts.MustGet("queries.json", "generate-queries")
	prompt := prompts.Format(template, map[string]string{
		"SectionTitle":    req.Title,
		"GradeLevel":      strconv.Itoa(req.GradeLevel),
		"Objectives":      strings.Join(req.LearningObjectives, "\n"),
		"Keywords":        strings.Join(req.ContentKeywords, ", "),
		"MustCover":       req.MustCover,
		"TeacherComments": p.teacherComments,
	})
	system := prompts.MustGet("queries.json", "generate-queries-system")

	raw, err := p.client.GenerateJSON(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("query generation failed: %w", err)
	}
	if err := schemas.ValidateResponse(schemas.SearchQueries, raw); err != nil {
		return nil, fmt.Errorf("query generation returned malformed response: %w", err)
	}

	var response struct {
		Queries []types.SearchQuery `json:"queries"`
	}
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}
	return response.Queries, nil
}

// FallbackQueries builds simple deterministic queries from the section
// title and keywords, used when LLM generation fails or returns nothing.
func FallbackQueries(req *types.SectionRequirement) []types.SearchQuery {
	primary := req.Title
	if len(req.ContentKeywords) > 0 {
		primary = req.Title + " " + req.ContentKeywords[0]
	}
	primary = llm.Truncate(primary, maxQueryLength)

	return []types.SearchQuery{
		{
			Priority:  types.PriorityPrimary,
			Query:     primary,
			Rationale: "fallback query using section title and keywords",
		},
		{
			Priority:  types.PrioritySecondary,
			Query:     req.Title + " explained",
			Rationale: "fallback explanatory query",
		},
	}
}
