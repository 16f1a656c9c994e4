package selection

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

// fakePlanner returns one query per iteration named after the iteration.
type fakePlanner struct {
	calls int
}

func (p *fakePlanner) Plan(_ context.Context, _ *types.SectionRequirement, iteration int) ([]types.SearchQuery, error) {
	p.calls++
	return []types.SearchQuery{{Priority: types.PriorityPrimary, Query: fmt.Sprintf("iter%d", iteration)}}, nil
}

// fakeVariant serves canned candidates per query. Candidates arrive from
// Search already carrying their analysis so Classify is a pass-through,
// except for IDs listed in classifyErrs.
type fakeVariant struct {
	results      map[string][]types.Candidate
	filter       Filter
	scorer       Scorer
	fallbackFn   func(pool []types.Candidate) []types.Candidate
	classifyErrs map[string]bool
	searchCalls  int
}

func (v *fakeVariant) Name() string   { return "fake" }
func (v *fakeVariant) Workers() int   { return 2 }
func (v *fakeVariant) Filter() Filter { return v.filter }
func (v *fakeVariant) Scorer() Scorer { return v.scorer }

func (v *fakeVariant) Search(_ context.Context, query string) ([]types.Candidate, error) {
	v.searchCalls++
	return v.results[query], nil
}

func (v *fakeVariant) Classify(_ context.Context, cand *types.Candidate, _ *types.SectionRequirement, _ []types.Candidate) (bool, error) {
	if v.classifyErrs[cand.ID] {
		return false, fmt.Errorf("classify blew up for %s", cand.ID)
	}
	return true, nil
}

func (v *fakeVariant) Fallback(pool []types.Candidate) []types.Candidate {
	if v.fallbackFn == nil {
		return nil
	}
	return v.fallbackFn(pool)
}

// passAllFilter accepts everything.
type passAllFilter struct{}

func (passAllFilter) Passes(*types.Candidate, *types.SectionRequirement) bool { return true }

// coverageFloorFilter accepts candidates at or above a coverage floor.
type coverageFloorFilter struct{ floor float64 }

func (f coverageFloorFilter) Passes(c *types.Candidate, _ *types.SectionRequirement) bool {
	return c.CoveragePercentage() >= f.floor
}

// failAllFilter rejects everything.
type failAllFilter struct{}

func (failAllFilter) Passes(*types.Candidate, *types.SectionRequirement) bool { return false }

// coverageScorer scores coverage/10 so ordering follows coverage.
type coverageScorer struct{}

func (coverageScorer) Score(c *types.Candidate, _ *types.SectionRequirement) float64 {
	return c.CoveragePercentage() / 10
}

func (coverageScorer) Rationale(c *types.Candidate) string {
	return fmt.Sprintf("%.0f%% coverage", c.CoveragePercentage())
}

func analyzedCandidate(id string, coverage, redundancy float64) types.Candidate {
	return types.Candidate{
		ID:         id,
		Title:      id,
		Coverage:   &types.CoverageAnalysis{CoveragePercentage: coverage},
		Redundancy: &types.RedundancyAnalysis{RedundancyPercentage: redundancy},
	}
}

func testRequirement() *types.SectionRequirement {
	return &types.SectionRequirement{
		Title:              "Photosynthesis",
		LearningObjectives: []string{"Explain how plants make food"},
		ContentKeywords:    []string{"chloroplast", "sunlight"},
		GradeLevel:         5,
	}
}

func TestEngineFillsAllSlotsInFirstIteration(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {
				analyzedCandidate("a", 90, 0),
				analyzedCandidate("b", 80, 0),
				analyzedCandidate("c", 70, 0),
				analyzedCandidate("d", 60, 0),
				analyzedCandidate("e", 50, 0),
			},
		},
		filter: passAllFilter{},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 3})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	assert.Len(t, result.Accepted, 3)
	assert.Equal(t, 1, result.IterationsPerformed)
	assert.Equal(t, "a", result.Accepted[0].ID)
	assert.Equal(t, "b", result.Accepted[1].ID)
	assert.Equal(t, "c", result.Accepted[2].ID)
}

func TestEngineSlotInvariantAndMonotonicOrder(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {analyzedCandidate("a", 95, 0), analyzedCandidate("b", 40, 0)},
			"iter2": {analyzedCandidate("c", 85, 0), analyzedCandidate("d", 75, 0)},
			"iter3": {analyzedCandidate("e", 65, 0)},
		},
		filter: coverageFloorFilter{floor: 60},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 2, ConvergenceThreshold: 200})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Accepted), 2)
	for i := 1; i < len(result.Accepted); i++ {
		assert.GreaterOrEqual(t, result.Accepted[i-1].Score, result.Accepted[i].Score)
	}
}

func TestEngineAcceptsHighestScoringCandidateFirst(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {
				analyzedCandidate("weak", 62, 50),
				analyzedCandidate("best", 85, 10),
				analyzedCandidate("poor", 30, 0),
			},
		},
		filter: coverageFloorFilter{floor: 60},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 3})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	require.NotEmpty(t, result.Accepted)
	assert.Equal(t, "best", result.Accepted[0].ID)
	assert.NotEmpty(t, result.Accepted[0].WhySelected)
}

func TestEngineContinuesPastEmptyIteration(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {analyzedCandidate("low1", 20, 0), analyzedCandidate("low2", 10, 0)},
			"iter2": {analyzedCandidate("good", 80, 0)},
		},
		filter: coverageFloorFilter{floor: 60},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 3})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	assert.Equal(t, 2, result.IterationsPerformed)
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "good", result.Accepted[0].ID)
}

func TestEngineTerminatesWhenSourceExhausted(t *testing.T) {
	same := []types.Candidate{analyzedCandidate("only", 20, 0)}
	variant := &fakeVariant{
		results: map[string][]types.Candidate{"iter1": same, "iter2": same, "iter3": same},
		filter:  coverageFloorFilter{floor: 60},
		scorer:  coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 3})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	// Iteration 2 yields nothing new, so iteration 3 never runs.
	assert.Equal(t, 2, result.IterationsPerformed)
	assert.Empty(t, result.Accepted)
}

func TestEngineStopsOnConvergence(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {analyzedCandidate("a", 50, 0)},
			"iter2": {analyzedCandidate("b", 50, 0)},
			"iter3": {analyzedCandidate("c", 50, 0)},
		},
		filter: passAllFilter{},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 10})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	// Iteration 1 improves coverage from 0 to 50; iteration 2 leaves the
	// mean at 50, under the 10-point threshold, so iteration 3 never runs.
	assert.Equal(t, 2, result.IterationsPerformed)
	assert.Len(t, result.Accepted, 2)
}

func TestEngineCoverageAggregateIsMean(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {analyzedCandidate("a", 90, 0), analyzedCandidate("b", 70, 0)},
		},
		filter: passAllFilter{},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 2})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	assert.InDelta(t, 80.0, result.CoveragePercentage, 0.001)
}

func TestEngineEmptyResultHasZeroCoverage(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{},
		filter:  passAllFilter{},
		scorer:  coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	assert.Empty(t, result.Accepted)
	assert.Zero(t, result.CoveragePercentage)
}

func TestEngineFallbackOnlyOnTotalStarvation(t *testing.T) {
	fallbackCalled := false
	makeVariant := func(filter Filter) *fakeVariant {
		return &fakeVariant{
			results: map[string][]types.Candidate{
				"iter1": {analyzedCandidate("a", 80, 0), analyzedCandidate("b", 70, 0)},
			},
			filter: filter,
			scorer: coverageScorer{},
			fallbackFn: func(pool []types.Candidate) []types.Candidate {
				fallbackCalled = true
				out := pool
				for i := range out {
					out[i].Score = fallbackScore
				}
				return out
			},
		}
	}

	// Total starvation with a non-empty pool triggers the fallback.
	engine := NewEngine(&fakePlanner{}, makeVariant(failAllFilter{}), Options{})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)
	assert.True(t, fallbackCalled)
	require.NotEmpty(t, result.Accepted)
	for _, cand := range result.Accepted {
		assert.Equal(t, fallbackScore, cand.Score)
	}

	// One passer anywhere means no fallback.
	fallbackCalled = false
	engine = NewEngine(&fakePlanner{}, makeVariant(coverageFloorFilter{floor: 75}), Options{})
	result, err = engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)
	assert.False(t, fallbackCalled)
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "a", result.Accepted[0].ID)
}

func TestEngineNoFallbackOnEmptyPool(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{},
		filter:  failAllFilter{},
		scorer:  coverageScorer{},
		fallbackFn: func(pool []types.Candidate) []types.Candidate {
			t.Fatal("fallback must not run with an empty pool")
			return nil
		},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
}

func TestEngineDropsCandidatesWhoseClassifyFails(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {analyzedCandidate("broken", 90, 0), analyzedCandidate("fine", 70, 0)},
		},
		filter:       passAllFilter{},
		scorer:       coverageScorer{},
		classifyErrs: map[string]bool{"broken": true},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 3, ConvergenceThreshold: 200})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "fine", result.Accepted[0].ID)
}

func TestEngineRejectsInvalidRequirementBeforeSearching(t *testing.T) {
	variant := &fakeVariant{filter: passAllFilter{}, scorer: coverageScorer{}}
	engine := NewEngine(&fakePlanner{}, variant, Options{})

	_, err := engine.Run(context.Background(), &types.SectionRequirement{})
	require.Error(t, err)

	var selErr *Error
	assert.ErrorAs(t, err, &selErr)
	assert.Zero(t, variant.searchCalls)
}

func TestEngineRecordsQueriesUsed(t *testing.T) {
	variant := &fakeVariant{
		results: map[string][]types.Candidate{
			"iter1": {analyzedCandidate("low", 10, 0)},
			"iter2": {analyzedCandidate("good", 90, 0)},
		},
		filter: coverageFloorFilter{floor: 60},
		scorer: coverageScorer{},
	}

	engine := NewEngine(&fakePlanner{}, variant, Options{MaxSlots: 3})
	result, err := engine.Run(context.Background(), testRequirement())
	require.NoError(t, err)

	assert.Equal(t, []string{"iter1", "iter2"}, result.QueriesUsed)
}
