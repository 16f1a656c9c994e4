package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFetchesPage(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "hello")
	assert.Equal(t, "text/html", result.ContentType)
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestURLNonOKStatusReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	// The partial result is still returned for status inspection.
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURLRejectsInvalidURL(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "/relative/path"} {
		_, err := URL(context.Background(), bad, nil)
		require.Error(t, err)

		var fe *Error
		assert.True(t, errors.As(err, &fe))
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{URL: "http://example.com", Message: "HTTP request failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "example.com")
}

func TestExtractMainTextPrefersContentSelectors(t *testing.T) {
	html := `<html><body>
		<nav>Site Nav</nav>
		<div class="entry-content">
			<p>Gather your materials.</p>
			<p>Follow the steps.</p>
		</div>
		<footer>Copyright</footer>
	</body></html>`

	text, err := ExtractMainText(html, LessonPlanSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Gather your materials.")
	assert.Contains(t, text, "Follow the steps.")
	assert.NotContains(t, text, "Site Nav")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain page text.</p><script>var x = 1;</script></body></html>`

	text, err := ExtractMainText(html, LessonPlanSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Plain page text.")
	assert.NotContains(t, text, "var x")
}

func TestCleanWhitespace(t *testing.T) {
	input := "  first line  \n\n\n   second line\n   \n"
	assert.Equal(t, "first line\nsecond line", cleanWhitespace(input))
}
