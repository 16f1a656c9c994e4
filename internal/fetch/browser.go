package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the threshold below which extracted text is considered
// too thin, suggesting the page renders its content with JavaScript.
const MinContentLength = 500

// WithBrowser fetches a URL using a headless browser, rendering JavaScript
// before extracting the page HTML. Slower than URL; use it only when the
// plain fetch produced thin content.
func WithBrowser(ctx context.Context, urlStr string, timeout time.Duration) (*Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "browser fetch failed",
			Cause:   err,
		}
	}

	return &Result{
		URL:         urlStr,
		HTML:        html,
		ContentType: "text/html",
		StatusCode:  200,
	}, nil
}

// ShouldUseBrowser reports whether a plain fetch produced content thin
// enough to warrant a browser retry.
func ShouldUseBrowser(result *Result, fetchErr error) bool {
	if fetchErr != nil {
		return true
	}
	if result == nil {
		return true
	}
	if len(result.Text) < MinContentLength {
		return true
	}
	return false
}

// Page fetches a URL with a plain HTTP request and falls back to a headless
// browser when the result looks JavaScript-rendered. The returned result
// always has Text populated from the lesson-plan selectors.
func Page(ctx context.Context, urlStr string, opts *Options, useBrowser bool) (*Result, error) {
	result, err := URL(ctx, urlStr, opts)
	if result != nil && err == nil {
		text, textErr := ExtractMainText(result.HTML, LessonPlanSelectors())
		if textErr == nil {
			result.Text = text
		}
	}

	if !useBrowser || !ShouldUseBrowser(result, err) {
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	browserResult, browserErr := WithBrowser(ctx, urlStr, timeout)
	if browserErr != nil {
		// Prefer the plain result if it at least succeeded.
		if err == nil && result != nil {
			return result, nil
		}
		return nil, fmt.Errorf("both plain and browser fetch failed for %s: %w", urlStr, browserErr)
	}

	text, textErr := ExtractMainText(browserResult.HTML, LessonPlanSelectors())
	if textErr == nil {
		browserResult.Text = text
	}
	return browserResult, nil
}
