package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// WorksheetVariant instantiates the engine for printable worksheet images:
// quality gates, 0-100 scoring with bonuses, and the top-3 starvation
// fallback.
type WorksheetVariant struct {
	searcher   ImageSearcher
	analyzer   WorksheetAnalyzing
	classifier SemanticAnalyzer
	policy     config.WorksheetPolicy
	filter     *WorksheetFilter
	scorer     *WorksheetScorer

	// raw keeps the search hit for each candidate ID so Classify can feed
	// the snippet and source page into analysis. Written only from Search,
	// which the engine runs single-threaded.
	raw map[string]search.ImageResult
}

// NewWorksheetVariant creates the worksheet variant.
func NewWorksheetVariant(searcher ImageSearcher, analyzer WorksheetAnalyzing, classifier SemanticAnalyzer, policy config.WorksheetPolicy) *WorksheetVariant {
	return &WorksheetVariant{
		searcher:   searcher,
		analyzer:   analyzer,
		classifier: classifier,
		policy:     policy,
		filter:     NewWorksheetFilter(policy),
		scorer:     NewWorksheetScorer(),
		raw:        make(map[string]search.ImageResult),
	}
}

func (w *WorksheetVariant) Name() string { return "worksheets" }

func (w *WorksheetVariant) Workers() int { return w.policy.AnalysisWorkers }

func (w *WorksheetVariant) Filter() Filter { return w.filter }

func (w *WorksheetVariant) Scorer() Scorer { return w.scorer }

func (w *WorksheetVariant) Fallback(pool []types.Candidate) []types.Candidate {
	return fallbackTopWorksheets(pool)
}

func (w *WorksheetVariant) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	images, err := w.searcher.SearchWorksheetImages(ctx, query, w.policy.MaxImagesPerSearch)
	if err != nil {
		return nil, err
	}

	candidates := make([]types.Candidate, 0, len(images))
	for _, img := range images {
		if img.ImageURL == "" {
			continue
		}
		w.raw[img.ImageURL] = img
		candidates = append(candidates, types.Candidate{
			ID:    img.ImageURL,
			Title: img.Title,
		})
	}
	return candidates, nil
}

// Classify runs the image through quality analysis, then coverage,
// suitability, and redundancy against the section.
func (w *WorksheetVariant) Classify(ctx context.Context, cand *types.Candidate, req *types.SectionRequirement, accepted []types.Candidate) (bool, error) {
	img, ok := w.raw[cand.ID]
	if !ok {
		return false, nil
	}

	analyzed, err := w.analyzer.Analyze(ctx, img, req)
	if err != nil {
		return false, err
	}
	*cand = *analyzed

	cand.Coverage = w.classifier.Coverage(ctx, cand.CoveredTopics, req)

	relevance, err := w.classifier.Relevance(ctx, worksheetSummary(cand), req)
	if err != nil {
		return false, err
	}
	cand.Relevance = relevance

	cand.Redundancy = w.classifier.Redundancy(ctx, cand.CoveredTopics, accepted)
	return true, nil
}

// worksheetSummary renders the analyzed facts for the suitability prompt.
func worksheetSummary(cand *types.Candidate) string {
	details := cand.Worksheet
	return fmt.Sprintf(
		"Worksheet: %s\nEstimated grade: %s\nTopics: %s\nVisual quality: %d/10\nEducational value: %d/10",
		cand.Title,
		details.GradeLevel,
		strings.Join(cand.CoveredTopics, ", "),
		details.VisualQuality,
		details.EducationalValue,
	)
}
