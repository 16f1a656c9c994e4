package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoadsEmbeddedPrompts(t *testing.T) {
	prompt, err := Get("analysis.json", "analyze-content")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
}

func TestGetUnknownFileOrKey(t *testing.T) {
	_, err := Get("missing.json", "anything")
	assert.Error(t, err)

	_, err = Get("analysis.json", "no-such-key")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	got := Format("Analyze {{.Title}} for grade {{.GradeLevel}}", map[string]string{
		"Title":      "Plant Power",
		"GradeLevel": "5",
	})
	assert.Equal(t, "Analyze Plant Power for grade 5", got)

	// Unreferenced keys and unmatched placeholders are left alone.
	assert.Equal(t, "keep {{.Other}}", Format("keep {{.Other}}", map[string]string{"Title": "x"}))
}
