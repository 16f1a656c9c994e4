package selection

import (
	"context"

	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// Variant binds one resource kind (videos, worksheets, activities) to the
// generic engine: how to search, how to classify one candidate, which
// filter and scorer to apply, and what to do on total starvation.
type Variant interface {
	// Name identifies the variant in logs and run records.
	Name() string

	// Search retrieves raw candidates for one query. "No results" is an
	// ordinary empty slice; errors are transport failures the engine
	// recovers from per-query.
	Search(ctx context.Context, query string) ([]types.Candidate, error)

	// Classify enriches one candidate in place with covered topics,
	// coverage, redundancy against the accepted set, and any variant
	// payload. A false keep with nil error means the candidate held no
	// usable content; an error drops it with a log line.
	Classify(ctx context.Context, cand *types.Candidate, req *types.SectionRequirement, accepted []types.Candidate) (keep bool, err error)

	// Filter and Scorer return the variant's threshold gate and ranking
	// function.
	Filter() Filter
	Scorer() Scorer

	// Fallback ranks the unfiltered pool when zero candidates passed the
	// filter across the whole run. Strict variants return nil.
	Fallback(pool []types.Candidate) []types.Candidate

	// Workers bounds the classify fan-out for one iteration.
	Workers() int
}

// SemanticAnalyzer is the LLM-backed classification surface the variants
// depend on. Satisfied by analysis.Classifier.
type SemanticAnalyzer interface {
	AnalyzeContent(ctx context.Context, title, description string, req *types.SectionRequirement) (*types.TopicAnalysis, error)
	Coverage(ctx context.Context, topics []string, req *types.SectionRequirement) *types.CoverageAnalysis
	Redundancy(ctx context.Context, newTopics []string, accepted []types.Candidate) *types.RedundancyAnalysis
	Relevance(ctx context.Context, resourceSummary string, req *types.SectionRequirement) (*types.Relevance, error)
}

// VideoSearcher is the video retrieval surface. Satisfied by
// search.YouTubeClient.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]string, error)
	VideoDetails(ctx context.Context, ids []string) ([]types.Candidate, error)
}

// ImageSearcher is the worksheet-image retrieval surface. Satisfied by
// search.CustomSearchClient.
type ImageSearcher interface {
	SearchWorksheetImages(ctx context.Context, query string, num int64) ([]search.ImageResult, error)
}

// PageSearcher is the activity-page retrieval surface. Satisfied by
// search.CustomSearchClient.
type PageSearcher interface {
	SearchActivityPages(ctx context.Context, query string, num int64) ([]search.PageResult, error)
}

// WorksheetAnalyzing assesses one worksheet image. Satisfied by
// extraction.WorksheetAnalyzer.
type WorksheetAnalyzing interface {
	Analyze(ctx context.Context, img search.ImageResult, req *types.SectionRequirement) (*types.Candidate, error)
}

// ActivityExtracting crawls and extracts one activity page. Satisfied by
// extraction.ActivityExtractor.
type ActivityExtracting interface {
	Extract(ctx context.Context, page search.PageResult, req *types.SectionRequirement) (*types.Candidate, error)
}
