package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FetchOptions configures job posting retrieval.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	// UseBrowser falls back to a headless browser when the static fetch
	// yields too little text, which is common on script-rendered boards.
	UseBrowser bool
}

// DefaultFetchOptions returns settings that work for most job boards.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Timeout:   30 * time.Second,
		UserAgent: "Mozilla/5.0 (compatible; interview-coach/1.0)",
	}
}

// FetchError describes a failed job posting retrieval.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// noiseSelectors matches chrome that never carries posting content.
const noiseSelectors = "nav, footer, header, aside, script, style, noscript, iframe, form, .cookie-banner, .ad, .advertisement"

// jobPostingSelectors is tried in order before falling back to body text.
var jobPostingSelectors = []string{
	"[class*='job-description']",
	"[class*='jobDescription']",
	"[class*='description']",
	"[class*='vacancy']",
	"article",
	"main",
	"[role='main']",
}

// minContentLength is the threshold below which a static fetch is assumed
// to have missed script-rendered content.
const minContentLength = 500

// FetchJobPosting downloads a job posting and extracts its readable text.
func FetchJobPosting(ctx context.Context, rawURL string, opts FetchOptions) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: rawURL, Message: "invalid URL", Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &FetchError{URL: rawURL, Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
	}

	html, err := fetchHTML(ctx, rawURL, opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(html)
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "content extraction failed", Cause: err}
	}

	if opts.UseBrowser && len(text) < minContentLength {
		rendered, berr := fetchWithBrowser(ctx, rawURL, opts.Timeout)
		if berr == nil {
			if btext, xerr := ExtractMainText(rendered); xerr == nil && len(btext) > len(text) {
				text = btext
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &FetchError{URL: rawURL, Message: "page contained no readable text"}
	}
	return text, nil
}

func fetchHTML(ctx context.Context, rawURL string, opts FetchOptions) (string, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchOptions().Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "building request", Cause: err}
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: rawURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "reading body", Cause: err}
	}
	return string(body), nil
}

// ExtractMainText strips navigation and scripts from an HTML document and
// returns the most content-dense region it can find.
func ExtractMainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(noiseSelectors).Remove()

	for _, sel := range jobPostingSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := CleanText(node.Text()); len(text) >= minContentLength {
			return text, nil
		}
	}
	return CleanText(doc.Find("body").Text()), nil
}
