package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// ImageResult is one worksheet-image search hit.
type ImageResult struct {
	Title        string
	Snippet      string
	ImageURL     string
	SourceURL    string
	ThumbnailURL string
}

// PageResult is one activity-page search hit.
type PageResult struct {
	Title   string
	Snippet string
	URL     string
}

// CustomSearchClient wraps the Google Custom Search API for worksheet and
// activity retrieval.
type CustomSearchClient struct {
	service *customsearch.Service
	cx      string
}

// NewCustomSearchClient creates a Custom Search client bound to one search
// engine ID.
func NewCustomSearchClient(ctx context.Context, apiKey, cx string) (*CustomSearchClient, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("Custom Search API key and engine ID are required")
	}
	service, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Custom Search client: %w", err)
	}
	return &CustomSearchClient{service: service, cx: cx}, nil
}

// SearchWorksheetImages searches Google Images for printable worksheets.
// The query is augmented with "printable worksheet" to bias toward visual
// classroom material.
func (c *CustomSearchClient) SearchWorksheetImages(ctx context.Context, query string, num int64) ([]ImageResult, error) {
	if num > 10 {
		num = 10 // API limit per request
	}

	call := c.service.Cse.List().
		Q(query + " printable worksheet").
		Cx(c.cx).
		SearchType("image").
		Safe("active").
		Num(num).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("image search failed for %q: %w", query, err)
	}

	results := make([]ImageResult, 0, len(response.Items))
	for _, item := range response.Items {
		result := ImageResult{
			Title:    item.Title,
			Snippet:  item.Snippet,
			ImageURL: item.Link,
		}
		if item.Image != nil {
			result.SourceURL = item.Image.ContextLink
			result.ThumbnailURL = item.Image.ThumbnailLink
		}
		results = append(results, result)
	}
	return results, nil
}

// SearchActivityPages searches the web for lesson-plan pages describing
// classroom activities.
func (c *CustomSearchClient) SearchActivityPages(ctx context.Context, query string, num int64) ([]PageResult, error) {
	if num > 10 {
		num = 10
	}

	call := c.service.Cse.List().
		Q(query + " classroom activity lesson plan").
		Cx(c.cx).
		Safe("active").
		Num(num).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("web search failed for %q: %w", query, err)
	}

	results := make([]PageResult, 0, len(response.Items))
	for _, item := range response.Items {
		results = append(results, PageResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}
	return results, nil
}
