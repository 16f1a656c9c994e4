// Package search provides clients for the external retrieval APIs: YouTube
// for video candidates and Google Custom Search for worksheet images and
// activity pages. "No results" is an ordinary empty slice; only transport
// failures return errors.
package search

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

// YouTubeClient wraps the YouTube Data API for educational video search.
type YouTubeClient struct {
	service *youtube.Service
}

// NewYouTubeClient creates a YouTube Data API client.
func NewYouTubeClient(ctx context.Context, apiKey string) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	return &YouTubeClient{service: service}, nil
}

// SearchVideos returns video IDs matching the query, restricted to the
// education category with strict safe search.
func (c *YouTubeClient) SearchVideos(ctx context.Context, query string, maxResults int64) ([]string, error) {
	call := c.service.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		VideoCategoryId("27"). // Education
		SafeSearch("strict").
		RelevanceLanguage("en").
		Order("relevance").
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed for %q: %w", query, err)
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, nil
}

// VideoDetails fetches full metadata for a batch of video IDs and shapes
// them as candidates carrying a video payload.
func (c *YouTubeClient) VideoDetails(ctx context.Context, ids []string) ([]types.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube details fetch failed: %w", err)
	}

	candidates := make([]types.Candidate, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}

		details := &types.VideoDetails{
			ChannelName: item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
			VideoURL:    "https://www.youtube.com/watch?v=" + item.Id,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			details.ThumbnailURL = item.Snippet.Thumbnails.High.Url
		}
		if item.ContentDetails != nil {
			seconds, err := ParseISODuration(item.ContentDetails.Duration)
			if err == nil {
				details.DurationSeconds = seconds
				details.DurationFormatted = FormatDuration(seconds)
			}
		}
		if item.Statistics != nil {
			details.ViewCount = int64(item.Statistics.ViewCount)
			details.LikeCount = int64(item.Statistics.LikeCount)
		}

		candidates = append(candidates, types.Candidate{
			ID:    item.Id,
			Title: item.Snippet.Title,
			Video: details,
		})
	}
	return candidates, nil
}
