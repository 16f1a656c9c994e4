package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

const transcriptTimeout = 15 * time.Second

// timedText mirrors the YouTube timedtext XML payload.
type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// FetchTranscript retrieves the English caption track for a video through
// the public timedtext endpoint. Many videos have no track at all; callers
// treat an error as "no transcript" and fall back to neutral pacing.
func FetchTranscript(ctx context.Context, videoID string) (string, error) {
	url := "https://video.google.com/timedtext?lang=en&v=" + videoID

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create transcript request: %w", err)
	}

	client := &http.Client{Timeout: transcriptTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript body: %w", err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("no caption track for video %s", videoID)
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse caption track: %w", err)
	}

	var sb strings.Builder
	for _, line := range parsed.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty caption track for video %s", videoID)
	}
	return sb.String(), nil
}

// WordsPerMinute computes speaking pace from a transcript and the video
// duration. Returns 0 when either input is unusable.
func WordsPerMinute(transcript string, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	words := len(strings.Fields(transcript))
	if words == 0 {
		return 0
	}
	return float64(words) / (float64(durationSeconds) / 60.0)
}
