package types

// QueryPriority orders search queries from most to least targeted.
type QueryPriority string

// Query priority levels. Iteration 1 runs primary+secondary queries,
// iteration 2 runs tertiary+quaternary, the final iteration runs all.
const (
	PriorityPrimary    QueryPriority = "primary"
	PrioritySecondary  QueryPriority = "secondary"
	PriorityTertiary   QueryPriority = "tertiary"
	PriorityQuaternary QueryPriority = "quaternary"
)

// SearchQuery is one generated search query with its priority.
type SearchQuery struct {
	Priority  QueryPriority `json:"priority"`
	Query     string        `json:"query"`
	Rationale string        `json:"rationale,omitempty"`
}

// SelectionResult is the output of one full selection run for one section.
//
// Invariants:
//   - len(Accepted) never exceeds the engine's slot budget.
//   - Accepted is ordered by acceptance; scores are non-increasing.
//   - CoveragePercentage is the arithmetic mean of accepted candidates'
//     coverage, and exactly 0 when Accepted is empty.
type SelectionResult struct {
	Accepted            []Candidate `json:"accepted"`
	QueriesUsed         []string    `json:"queries_used"`
	CoveragePercentage  float64     `json:"coverage_percentage"`
	IterationsPerformed int         `json:"iterations_performed"`
}
