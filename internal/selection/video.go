package selection

import (
	"context"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// videoClassifyWorkers bounds the per-iteration classify fan-out for the
// video variant.
const videoClassifyWorkers = 3

// TranscriptFunc fetches a caption track for a video ID.
type TranscriptFunc func(ctx context.Context, videoID string) (string, error)

// VideoVariant instantiates the engine for YouTube videos: strict filtering,
// 0-10 scoring, no starvation fallback.
type VideoVariant struct {
	searcher    VideoSearcher
	classifier  SemanticAnalyzer
	policy      config.VideoPolicy
	filter      *VideoFilter
	scorer      *VideoScorer
	transcripts TranscriptFunc
}

// NewVideoVariant creates the video variant.
func NewVideoVariant(searcher VideoSearcher, classifier SemanticAnalyzer, policy config.VideoPolicy) *VideoVariant {
	return &VideoVariant{
		searcher:    searcher,
		classifier:  classifier,
		policy:      policy,
		filter:      NewVideoFilter(policy),
		scorer:      NewVideoScorer(policy),
		transcripts: search.FetchTranscript,
	}
}

func (v *VideoVariant) Name() string { return "videos" }

func (v *VideoVariant) Workers() int { return videoClassifyWorkers }

func (v *VideoVariant) Filter() Filter { return v.filter }

func (v *VideoVariant) Scorer() Scorer { return v.scorer }

// Fallback is nil for videos; an empty section is a valid outcome.
func (v *VideoVariant) Fallback(pool []types.Candidate) []types.Candidate { return nil }

func (v *VideoVariant) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	ids, err := v.searcher.SearchVideos(ctx, query, v.policy.ResultsPerQuery)
	if err != nil {
		return nil, err
	}
	return v.searcher.VideoDetails(ctx, ids)
}

// Classify fetches the caption track for pacing analysis, extracts covered
// topics, and runs coverage and redundancy against the section.
func (v *VideoVariant) Classify(ctx context.Context, cand *types.Candidate, req *types.SectionRequirement, accepted []types.Candidate) (bool, error) {
	details := cand.Video
	if details == nil {
		return false, nil
	}

	// Best effort; many videos simply have no caption track.
	if transcript, err := v.transcripts(ctx, cand.ID); err == nil {
		details.HasTranscript = true
		details.WPM = search.WordsPerMinute(transcript, details.DurationSeconds)
	}

	topicAnalysis, err := v.classifier.AnalyzeContent(ctx, cand.Title, details.Description, req)
	if err != nil {
		return false, err
	}
	cand.CoveredTopics = topicAnalysis.TopicsCovered
	cand.MainFocus = topicAnalysis.MainFocus
	cand.Depth = topicAnalysis.ContentDepth

	cand.Coverage = v.classifier.Coverage(ctx, cand.CoveredTopics, req)
	cand.Redundancy = v.classifier.Redundancy(ctx, cand.CoveredTopics, accepted)
	return true, nil
}
