// Package generator orchestrates the resource population phases: for each
// curriculum section it instantiates the selection engine with the right
// variant and merges the results back into the section record.
package generator

import (
	"context"
	"fmt"

	"github.com/m-ayala/edcube-mvp/internal/analysis"
	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/extraction"
	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/observability"
	"github.com/m-ayala/edcube-mvp/internal/queryplan"
	"github.com/m-ayala/edcube-mvp/internal/selection"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// ResourceKind identifies which resource list a population run fills.
type ResourceKind string

// Resource kinds, one per selection variant.
const (
	KindVideos     ResourceKind = "videos"
	KindWorksheets ResourceKind = "worksheets"
	KindActivities ResourceKind = "activities"
)

// ProgressStage marks where a population run is in its lifecycle.
type ProgressStage string

// Progress stages reported to callbacks.
const (
	StageStarted   ProgressStage = "started"
	StageCompleted ProgressStage = "completed"
	StageFailed    ProgressStage = "failed"
)

// ProgressEvent describes one step of a population run.
type ProgressEvent struct {
	SectionIndex int           `json:"section_index"`
	SectionTitle string        `json:"section_title"`
	Kind         ResourceKind  `json:"kind"`
	Stage        ProgressStage `json:"stage"`
	Accepted     int           `json:"accepted,omitempty"`
	Coverage     float64       `json:"coverage,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// ProgressFunc receives population progress. May be nil.
type ProgressFunc func(event ProgressEvent)

// Generator runs resource population for curriculum sections.
type Generator struct {
	llmClient  llm.Client
	videos     selection.VideoSearcher
	images     selection.ImageSearcher
	pages      selection.PageSearcher
	classifier *analysis.Classifier
	cfg        config.Config
	printer    *observability.Printer
}

// New creates a generator. The printer may be nil to disable verbose
// output; the custom-search client serves both image and page search.
func New(llmClient llm.Client, videos selection.VideoSearcher, images selection.ImageSearcher, pages selection.PageSearcher, cfg config.Config, printer *observability.Printer) *Generator {
	return &Generator{
		llmClient:  llmClient,
		videos:     videos,
		images:     images,
		pages:      pages,
		classifier: analysis.NewClassifier(llmClient),
		cfg:        cfg,
		printer:    printer,
	}
}

// PopulateVideos fills one section's video resources in place.
func (g *Generator) PopulateVideos(ctx context.Context, curriculum *types.Curriculum, sectionIndex int) (*types.SelectionResult, error) {
	if g.videos == nil {
		return nil, fmt.Errorf("video search is not configured")
	}
	section, err := sectionAt(curriculum, sectionIndex)
	if err != nil {
		return nil, err
	}

	variant := selection.NewVideoVariant(g.videos, g.classifier, config.DefaultVideoPolicy())
	result, err := g.run(ctx, curriculum, section, variant, g.cfg.MaxVideosPerSection, KindVideos)
	if err != nil {
		return nil, err
	}

	section.VideoResources = result.Accepted
	mergeRunMetadata(section, result)
	return result, nil
}

// PopulateWorksheets fills one section's worksheet options in place.
func (g *Generator) PopulateWorksheets(ctx context.Context, curriculum *types.Curriculum, sectionIndex int) (*types.SelectionResult, error) {
	if g.images == nil {
		return nil, fmt.Errorf("worksheet search is not configured")
	}
	section, err := sectionAt(curriculum, sectionIndex)
	if err != nil {
		return nil, err
	}

	analyzer := extraction.NewWorksheetAnalyzer(g.llmClient)
	variant := selection.NewWorksheetVariant(g.images, analyzer, g.classifier, config.DefaultWorksheetPolicy())
	result, err := g.run(ctx, curriculum, section, variant, g.cfg.MaxWorksheetOptions, KindWorksheets)
	if err != nil {
		return nil, err
	}

	section.WorksheetOptions = result.Accepted
	mergeRunMetadata(section, result)
	return result, nil
}

// PopulateActivities fills one section's activity options in place.
func (g *Generator) PopulateActivities(ctx context.Context, curriculum *types.Curriculum, sectionIndex int) (*types.SelectionResult, error) {
	if g.pages == nil {
		return nil, fmt.Errorf("activity search is not configured")
	}
	section, err := sectionAt(curriculum, sectionIndex)
	if err != nil {
		return nil, err
	}

	extractor := extraction.NewActivityExtractor(g.llmClient, g.cfg.UseBrowser)
	variant := selection.NewActivityVariant(g.pages, extractor, g.classifier, config.DefaultActivityPolicy())
	result, err := g.run(ctx, curriculum, section, variant, g.cfg.MaxActivityOptions, KindActivities)
	if err != nil {
		return nil, err
	}

	section.ActivityOptions = result.Accepted
	mergeRunMetadata(section, result)
	return result, nil
}

// PopulateAll runs every population kind for every section sequentially.
// Sections share no state, so a failure in one section is reported through
// the callback and the rest still run; the first error is returned at the
// end.
func (g *Generator) PopulateAll(ctx context.Context, curriculum *types.Curriculum, progress ProgressFunc) error {
	var firstErr error
	for i := range curriculum.Sections {
		for _, kind := range []ResourceKind{KindVideos, KindWorksheets, KindActivities} {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			title := curriculum.Sections[i].Title
			emit(progress, ProgressEvent{SectionIndex: i, SectionTitle: title, Kind: kind, Stage: StageStarted})

			result, err := g.populate(ctx, curriculum, i, kind)
			if err != nil {
				emit(progress, ProgressEvent{SectionIndex: i, SectionTitle: title, Kind: kind, Stage: StageFailed, Error: err.Error()})
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			emit(progress, ProgressEvent{
				SectionIndex: i,
				SectionTitle: title,
				Kind:         kind,
				Stage:        StageCompleted,
				Accepted:     len(result.Accepted),
				Coverage:     result.CoveragePercentage,
			})
		}
	}
	return firstErr
}

func (g *Generator) populate(ctx context.Context, curriculum *types.Curriculum, sectionIndex int, kind ResourceKind) (*types.SelectionResult, error) {
	switch kind {
	case KindVideos:
		return g.PopulateVideos(ctx, curriculum, sectionIndex)
	case KindWorksheets:
		return g.PopulateWorksheets(ctx, curriculum, sectionIndex)
	case KindActivities:
		return g.PopulateActivities(ctx, curriculum, sectionIndex)
	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// run builds a fresh planner and engine for one section and executes it.
// Planners cache their query set, so each run gets its own.
func (g *Generator) run(ctx context.Context, curriculum *types.Curriculum, section *types.Section, variant selection.Variant, maxSlots int, kind ResourceKind) (*types.SelectionResult, error) {
	req := section.Requirement(curriculum.GradeLevel)
	planner := queryplan.NewPlanner(g.llmClient, curriculum.Requirements)
	engine := selection.NewEngine(planner, variant, selection.Options{
		MaxIterations:        g.cfg.MaxIterations,
		MaxSlots:             maxSlots,
		ConvergenceThreshold: g.cfg.ConvergenceThreshold,
	})

	result, err := engine.Run(ctx, &req)
	if err != nil {
		return nil, err
	}
	if g.printer != nil {
		g.printer.PrintSelectionResult(section.Title, string(kind), result)
	}
	return result, nil
}

func sectionAt(curriculum *types.Curriculum, index int) (*types.Section, error) {
	if index < 0 || index >= len(curriculum.Sections) {
		return nil, fmt.Errorf("section index %d out of range (curriculum has %d sections)", index, len(curriculum.Sections))
	}
	return &curriculum.Sections[index], nil
}

// mergeRunMetadata folds a run's queries and coverage into the section.
func mergeRunMetadata(section *types.Section, result *types.SelectionResult) {
	section.QueriesUsed = append(section.QueriesUsed, result.QueriesUsed...)
	section.CoverageStatus = &types.CoverageStatus{
		CoveragePercentage:  result.CoveragePercentage,
		IterationsPerformed: result.IterationsPerformed,
	}
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
