package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/best-odds/internal/config"
)

func fixtureSite(url string) config.SiteConfig {
	return config.SiteConfig{
		Name:           "gamma",
		URL:            url,
		ContainerClass: "coupon",
		MatchClass:     "teams",
		OddsClass:      "price",
	}
}

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/bookmaker.html")
	require.NoError(t, err)
	return string(data)
}

func selectionFrom(t *testing.T, markup string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc.Find("body").Children().First()
}

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{name: "line breaks", markup: `<div>Arsenal<br>vs<br>Chelsea</div>`, want: "Arsenal\nvs\nChelsea"},
		{name: "block children", markup: `<div><div>Liverpool</div><div>Everton</div></div>`, want: "Liverpool\nEverton"},
		{name: "inline whitespace collapses", markup: `<div><span>Man</span>   <span>City</span></div>`, want: "Man City"},
		{name: "hidden element", markup: `<div><i style="display:none">2,45</i></div>`, want: ""},
		{name: "hidden attribute", markup: `<div><b hidden>secret</b>shown</div>`, want: "shown"},
		{name: "script skipped", markup: `<div><script>var x = 1;</script>text</div>`, want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleText(selectionFrom(t, tt.markup)))
		})
	}
}

func TestClassSelector(t *testing.T) {
	assert.Equal(t, ".coupon", classSelector("coupon"))
	assert.Equal(t, ".coupon.live", classSelector("coupon live"))
	assert.Equal(t, ".already > .css", classSelector(".already > .css"))
	assert.Equal(t, "#events", classSelector("#events"))
	assert.Equal(t, "", classSelector("  "))
}

func TestExtractorExtract(t *testing.T) {
	containers, err := NewExtractor().Extract(readFixture(t), fixtureSite("https://gamma.example.com"))
	require.NoError(t, err)
	require.Len(t, containers, 2)

	first := containers[0]
	assert.Equal(t, []string{"Arsenal\nvs\nChelsea", "Liverpool\nEverton"}, first.MatchTexts)
	assert.Equal(t, []string{"2,10", "3,40", "3,50", "1,55", "4,20", "6,00"}, first.OddTexts)
	assert.Len(t, first.OddMarkup, 6)

	hidden := containers[1]
	assert.Equal(t, []string{"Brighton\nFulham"}, hidden.MatchTexts)
	assert.Equal(t, []string{"", "", ""}, hidden.OddTexts)
	assert.Contains(t, hidden.OddMarkup[0], "2,45")
}

func TestExtractorNoContainers(t *testing.T) {
	site := fixtureSite("https://gamma.example.com")
	site.ContainerClass = "missing"

	_, err := NewExtractor().Extract(readFixture(t), site)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoContainers))
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func newTestHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 100
	cfg.CircuitBreakerMax = 2
	cfg.UserAgent = "best-odds-test"
	return NewRateLimitedHTTPClient(cfg, nil)
}

func TestRateLimitedHTTPClientFetchHTML(t *testing.T) {
	fixture := readFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "best-odds-test", r.Header.Get("User-Agent"))
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(fixture))
	}))
	defer server.Close()

	client := newTestHTTPClient()
	defer client.Close()

	markup, err := client.FetchHTML(context.Background(), fixtureSite(server.URL+"/football"))
	require.NoError(t, err)
	assert.Contains(t, markup, "Arsenal")
	assert.Equal(t, "http", client.Mode())

	_, err = client.FetchHTML(context.Background(), fixtureSite(server.URL+"/missing"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
	assert.False(t, client.IsOpen())
}

func TestRateLimitedHTTPClientCircuitBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestHTTPClient()
	site := fixtureSite(server.URL)

	for i := 0; i < 2; i++ {
		_, err := client.FetchHTML(context.Background(), site)
		require.Error(t, err)
	}
	assert.True(t, client.IsOpen())

	_, err := client.FetchHTML(context.Background(), site)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
}

func TestRateLimitedHTTPClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestHTTPClient().FetchHTML(ctx, fixtureSite(server.URL))
	require.Error(t, err)
	assert.Equal(t, ErrCodeTimeout, ErrorCode(err))
}

func TestScraperFetch(t *testing.T) {
	fixture := readFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))
	defer server.Close()

	source := NewScraper(newTestHTTPClient(), nil)
	defer source.Close()

	raw, err := source.Fetch(context.Background(), fixtureSite(server.URL))
	require.NoError(t, err)
	assert.Equal(t, "gamma", raw.Site)
	assert.Equal(t, server.URL, raw.URL)
	assert.Len(t, raw.Containers, 2)
	assert.False(t, raw.FetchedAt.IsZero())
	assert.Equal(t, ModeHTTP, source.Name())
}

func TestNewFetcher(t *testing.T) {
	fetcher, err := NewFetcher(config.ScraperConfig{Mode: ModeHTTP, PageTimeoutSeconds: 5, RateLimit: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeHTTP, fetcher.Mode())

	_, err = NewFetcher(config.ScraperConfig{Mode: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}

func TestDataSourceError(t *testing.T) {
	err := NewDataSourceError("alpha", ErrCodeTimeout, "page load", context.DeadlineExceeded)
	assert.Equal(t, "alpha: timeout: page load (context deadline exceeded)", err.Error())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "unknown", ErrorCode(errors.New("plain")))
}
