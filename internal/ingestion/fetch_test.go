package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html>
<head><title>Job</title><script>console.log("tracking")</script></head>
<body>
<nav>Home | Jobs | About</nav>
<header>MegaCorp Careers</header>
<main>
<h1>Senior Go Engineer</h1>
<p>We are hiring a backend engineer to build payment infrastructure in Go.
You will design APIs, operate PostgreSQL clusters and mentor junior engineers.
The team ships weekly and owns its services end to end, from design review
through production rollout. Experience with gRPC and event-driven systems is
a strong plus, as is prior exposure to regulated financial environments.
We offer a hybrid setup, a training budget and a transparent salary grid.</p>
</main>
<footer>© MegaCorp 2026 · Privacy · Cookies</footer>
</body></html>`

func TestFetchJobPosting_StripsChrome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	text, err := FetchJobPosting(context.Background(), srv.URL, DefaultFetchOptions())
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "payment infrastructure")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "MegaCorp Careers")
	assert.NotContains(t, text, "Privacy")
	assert.NotContains(t, text, "console.log")
}

func TestFetchJobPosting_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-url", "ftp://example.com/job"} {
		_, err := FetchJobPosting(context.Background(), raw, DefaultFetchOptions())
		require.Error(t, err, raw)
		var ferr *FetchError
		assert.ErrorAs(t, err, &ferr)
	}
}

func TestFetchJobPosting_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchJobPosting(context.Background(), srv.URL, DefaultFetchOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchJobPosting_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	opts := DefaultFetchOptions()
	opts.UserAgent = "interview-coach-test/1.0"
	_, err := FetchJobPosting(context.Background(), srv.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, "interview-coach-test/1.0", gotUA)
}

func TestExtractMainText_BodyFallback(t *testing.T) {
	html := `<html><body><div><p>Short posting text.</p></div></body></html>`
	text, err := ExtractMainText(html)
	require.NoError(t, err)
	assert.Equal(t, "Short posting text.", text)
}

func TestExtractMainText_PrefersDescriptionBlock(t *testing.T) {
	long := strings.Repeat("Relevant posting sentence describing the role. ", 20)
	html := `<html><body><div class="sidebar">Unrelated links</div><div class="job-description">` + long + `</div></body></html>`
	text, err := ExtractMainText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Relevant posting sentence")
	assert.NotContains(t, text, "Unrelated links")
}
