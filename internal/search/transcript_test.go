package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordsPerMinute(t *testing.T) {
	// 300 words over 3 minutes.
	transcript := strings.Repeat("word ", 300)
	assert.InDelta(t, 100.0, WordsPerMinute(transcript, 180), 0.001)

	assert.Zero(t, WordsPerMinute("", 180))
	assert.Zero(t, WordsPerMinute("   ", 180))
	assert.Zero(t, WordsPerMinute(transcript, 0))
	assert.Zero(t, WordsPerMinute(transcript, -5))
}
