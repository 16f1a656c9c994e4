package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// ActivityVariant instantiates the engine for hands-on classroom
// activities extracted from lesson-plan pages: lenient OR-combined
// suitability, 0-10 scoring, and the top-3 starvation fallback.
type ActivityVariant struct {
	searcher   PageSearcher
	extractor  ActivityExtracting
	classifier SemanticAnalyzer
	policy     config.ActivityPolicy
	filter     *ActivityFilter
	scorer     *ActivityScorer

	// raw keeps the search hit for each candidate ID so Classify can crawl
	// the page. Written only from Search, which the engine runs
	// single-threaded.
	raw map[string]search.PageResult
}

// NewActivityVariant creates the activity variant.
func NewActivityVariant(searcher PageSearcher, extractor ActivityExtracting, classifier SemanticAnalyzer, policy config.ActivityPolicy) *ActivityVariant {
	return &ActivityVariant{
		searcher:   searcher,
		extractor:  extractor,
		classifier: classifier,
		policy:     policy,
		filter:     NewActivityFilter(policy),
		scorer:     NewActivityScorer(),
		raw:        make(map[string]search.PageResult),
	}
}

func (a *ActivityVariant) Name() string { return "activities" }

func (a *ActivityVariant) Workers() int { return a.policy.CrawlWorkers }

func (a *ActivityVariant) Filter() Filter { return a.filter }

func (a *ActivityVariant) Scorer() Scorer { return a.scorer }

func (a *ActivityVariant) Fallback(pool []types.Candidate) []types.Candidate {
	return fallbackTopActivities(pool)
}

func (a *ActivityVariant) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	pages, err := a.searcher.SearchActivityPages(ctx, query, a.policy.MaxPagesPerSearch)
	if err != nil {
		return nil, err
	}

	candidates := make([]types.Candidate, 0, len(pages))
	for _, page := range pages {
		if page.URL == "" {
			continue
		}
		a.raw[page.URL] = page
		candidates = append(candidates, types.Candidate{
			ID:    page.URL,
			Title: page.Title,
		})
	}
	return candidates, nil
}

// Classify crawls the page, extracts the activity, then runs coverage,
// suitability, and redundancy against the section. Pages with no usable
// activity are skipped without error.
func (a *ActivityVariant) Classify(ctx context.Context, cand *types.Candidate, req *types.SectionRequirement, accepted []types.Candidate) (bool, error) {
	page, ok := a.raw[cand.ID]
	if !ok {
		return false, nil
	}

	extracted, err := a.extractor.Extract(ctx, page, req)
	if err != nil {
		return false, err
	}
	if extracted == nil {
		return false, nil
	}
	*cand = *extracted

	cand.Coverage = a.classifier.Coverage(ctx, cand.CoveredTopics, req)

	relevance, err := a.classifier.Relevance(ctx, activitySummary(cand), req)
	if err != nil {
		return false, err
	}
	cand.Relevance = relevance

	cand.Redundancy = a.classifier.Redundancy(ctx, cand.CoveredTopics, accepted)
	return true, nil
}

// activitySummary renders the extracted activity for the suitability prompt.
func activitySummary(cand *types.Candidate) string {
	details := cand.Activity
	return fmt.Sprintf(
		"Activity: %s (%s)\n%s\nSteps: %d\nMaterials: %s\nDuration: %s",
		details.Name,
		details.Type,
		details.Description,
		len(details.Steps),
		strings.Join(details.Materials, ", "),
		details.Duration,
	)
}
