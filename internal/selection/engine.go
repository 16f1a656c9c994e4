package selection

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

// Default policy knobs, all overridable through Options.
const (
	DefaultMaxIterations        = 3
	DefaultMaxSlots             = 3
	DefaultConvergenceThreshold = 10.0
	DefaultClassifyTimeout      = 30 * time.Second
)

// QueryPlanner supplies the query subset for each iteration. Satisfied by
// queryplan.Planner.
type QueryPlanner interface {
	Plan(ctx context.Context, req *types.SectionRequirement, iteration int) ([]types.SearchQuery, error)
}

// Options are the caller-overridable policy knobs for one engine.
type Options struct {
	MaxIterations        int
	MaxSlots             int
	ConvergenceThreshold float64
	ClassifyTimeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MaxSlots <= 0 {
		o.MaxSlots = DefaultMaxSlots
	}
	if o.ConvergenceThreshold <= 0 {
		o.ConvergenceThreshold = DefaultConvergenceThreshold
	}
	if o.ClassifyTimeout <= 0 {
		o.ClassifyTimeout = DefaultClassifyTimeout
	}
	return o
}

// Engine drives the iterate-search-classify-filter-score-select loop for
// one section until convergence or budget exhaustion. One engine instance
// serves one section run; it owns the accepted list and the deduplication
// set exclusively.
type Engine struct {
	planner QueryPlanner
	variant Variant
	opts    Options
}

// NewEngine creates an engine for one section run.
func NewEngine(planner QueryPlanner, variant Variant, opts Options) *Engine {
	return &Engine{
		planner: planner,
		variant: variant,
		opts:    opts.withDefaults(),
	}
}

// Run executes the full selection loop and returns the accepted candidates
// in descending score order. The result is always consistent: acceptances
// are committed atomically per iteration, and cancellation between
// iterations returns whatever has been committed so far.
func (e *Engine) Run(ctx context.Context, req *types.SectionRequirement) (*types.SelectionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &Error{Section: req.Title, Message: "invalid section requirement", Cause: err}
	}

	seen := make(map[string]bool)
	var accepted []types.Candidate
	var pool []types.Candidate
	var queriesUsed []string
	anyPassed := false
	prevCoverage := 0.0
	iterations := 0

	for iteration := 1; iteration <= e.opts.MaxIterations; iteration++ {
		if ctx.Err() != nil {
			break
		}

		queries, err := e.planner.Plan(ctx, req, iteration)
		if err != nil {
			return nil, &Error{Section: req.Title, Message: "query planning failed", Cause: err}
		}

		fresh := e.search(ctx, queries, seen, &queriesUsed)
		iterations = iteration

		// Source exhausted: every query came back with only items we have
		// already offered this section.
		if len(fresh) == 0 {
			break
		}

		batch := e.classify(ctx, fresh, req, accepted)
		pool = append(pool, batch...)

		passing := e.filterAndScore(batch, req)
		if len(passing) > 0 {
			anyPassed = true
		}

		remaining := e.opts.MaxSlots - len(accepted)
		if remaining > len(passing) {
			remaining = len(passing)
		}
		for i := 0; i < remaining; i++ {
			cand := passing[i]
			cand.WhySelected = e.variant.Scorer().Rationale(&cand)
			accepted = append(accepted, cand)
		}

		coverage := meanCoverage(accepted)
		if len(accepted) >= e.opts.MaxSlots {
			break
		}
		// Convergence only applies once something has been accepted; an
		// empty iteration gets to try the next, wider query set.
		if len(accepted) > 0 && coverage-prevCoverage < e.opts.ConvergenceThreshold {
			break
		}
		prevCoverage = coverage
	}

	if !anyPassed && len(pool) > 0 {
		if fallback := e.variant.Fallback(pool); len(fallback) > 0 {
			log.Printf("%s: no candidates passed filtering for %q, using structural fallback", e.variant.Name(), req.Title)
			accepted = fallback
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score > accepted[j].Score
	})

	return &types.SelectionResult{
		Accepted:            accepted,
		QueriesUsed:         queriesUsed,
		CoveragePercentage:  meanCoverage(accepted),
		IterationsPerformed: iterations,
	}, nil
}

// search runs every query in the iteration's subset, recovering per-query,
// and returns the candidates not yet seen this run.
func (e *Engine) search(ctx context.Context, queries []types.SearchQuery, seen map[string]bool, queriesUsed *[]string) []types.Candidate {
	var fresh []types.Candidate
	for _, query := range queries {
		candidates, err := e.variant.Search(ctx, query.Query)
		if err != nil {
			log.Printf("%s: search failed for query %q, continuing: %v", e.variant.Name(), query.Query, err)
			continue
		}
		*queriesUsed = append(*queriesUsed, query.Query)

		for _, cand := range candidates {
			if seen[cand.ID] {
				continue
			}
			seen[cand.ID] = true
			fresh = append(fresh, cand)
		}
	}
	return fresh
}

// classify fans the per-candidate work out over a bounded pool with a
// per-task timeout. A failed or timed-out candidate is dropped without
// affecting its siblings; survivors come back in retrieval order so later
// tie-breaks stay deterministic.
func (e *Engine) classify(ctx context.Context, fresh []types.Candidate, req *types.SectionRequirement, accepted []types.Candidate) []types.Candidate {
	classified := make([]*types.Candidate, len(fresh))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.variant.Workers())
	for i := range fresh {
		g.Go(func() error {
			taskCtx, cancel := context.WithTimeout(gctx, e.opts.ClassifyTimeout)
			defer cancel()

			cand := fresh[i]
			keep, err := e.variant.Classify(taskCtx, &cand, req, accepted)
			if err != nil {
				log.Printf("%s: classify failed for %q, dropping candidate: %v", e.variant.Name(), cand.Title, err)
				return nil
			}
			if keep {
				classified[i] = &cand
			}
			return nil
		})
	}
	_ = g.Wait()

	var batch []types.Candidate
	for _, cand := range classified {
		if cand != nil {
			batch = append(batch, *cand)
		}
	}
	return batch
}

// filterAndScore gates the batch, scores the survivors, and sorts them
// descending by score. The stable sort keeps retrieval order for equal
// scores, so ties resolve to the first-seen candidate across runs.
func (e *Engine) filterAndScore(batch []types.Candidate, req *types.SectionRequirement) []types.Candidate {
	filter := e.variant.Filter()
	scorer := e.variant.Scorer()

	var passing []types.Candidate
	for _, cand := range batch {
		if !filter.Passes(&cand, req) {
			continue
		}
		cand.Score = scorer.Score(&cand, req)
		passing = append(passing, cand)
	}

	sort.SliceStable(passing, func(i, j int) bool {
		return passing[i].Score > passing[j].Score
	})
	return passing
}

// meanCoverage is the aggregate section coverage: the arithmetic mean over
// the accepted set, 0 when nothing is accepted.
func meanCoverage(accepted []types.Candidate) float64 {
	if len(accepted) == 0 {
		return 0
	}
	total := 0.0
	for i := range accepted {
		total += accepted[i].CoveragePercentage()
	}
	return total / float64(len(accepted))
}
