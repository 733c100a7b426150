package newsource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang-sentiment-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const microblogTimeLayout = "Jan 2, 2006 · 3:04 PM MST"

func microblogPost(content, author, href, postedAt string, likes, retweets string) string {
	return fmt.Sprintf(`<div class="timeline-item">
  <a class="username">@%s</a>
  <span class="tweet-date"><a href="%s" title="%s">1h</a></span>
  <div class="tweet-content">%s</div>
  <div class="tweet-stats">
    <div><span class="icon-retweet"></span> %s</div>
    <div><span class="icon-heart"></span> %s</div>
  </div>
</div>`, author, href, postedAt, content, retweets, likes)
}

func newTestMicroblogSource(t *testing.T, baseURL string) *MicroblogSource {
	t.Helper()
	cfg := config.Microblog{
		Enabled:    true,
		BaseURL:    baseURL,
		MinLikes:   10,
		MaxResults: 50,
	}
	return NewMicroblogSource(cfg, testSourceLogger(t))
}

func TestMicroblogFetchParsesPosts(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Minute)
	postedAt := now.Add(-time.Hour).Format(microblogTimeLayout)

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		require.Equal(t, "/search", r.URL.Path)
		fmt.Fprintf(w, `<html><body>%s%s</body></html>`,
			microblogPost("$AAPL printing money this quarter", "trader42", "/trader42/status/101#m", postedAt, "1,250", "300"),
			microblogPost("$AAPL to the moon", "noise", "/noise/status/102#m", postedAt, "3", "1"),
		)
	}))
	defer server.Close()

	source := newTestMicroblogSource(t, server.URL)

	items, err := source.Fetch(context.Background(), "AAPL", now.Add(-6*time.Hour), now)
	require.NoError(t, err)

	// Cashtag and hashtag searches return the same posts; dedup by URL
	// keeps one copy, and the low-engagement post is dropped.
	assert.EqualValues(t, 2, requests.Load())
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "$AAPL printing money this quarter", item.Title)
	assert.Equal(t, "trader42", item.Author)
	assert.Equal(t, SourceTypeMicroblog, item.SourceType)
	assert.Equal(t, server.URL+"/trader42/status/101#m", item.URL)
	require.NotNil(t, item.EngagementScore)
	assert.Equal(t, 1550, *item.EngagementScore)
}

func TestMicroblogFetchWindowFilter(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Minute)
	stale := now.Add(-72 * time.Hour).Format(microblogTimeLayout)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>%s</body></html>`,
			microblogPost("$AAPL old take", "trader42", "/trader42/status/103#m", stale, "500", "20"),
		)
	}))
	defer server.Close()

	source := newTestMicroblogSource(t, server.URL)

	items, err := source.Fetch(context.Background(), "AAPL", now.Add(-6*time.Hour), now)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMicroblogFetchMirrorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	source := newTestMicroblogSource(t, server.URL)

	// Mirror failures are logged and produce an empty result, not an error.
	items, err := source.Fetch(context.Background(), "AAPL", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMicroblogIsAvailable(t *testing.T) {
	assert.True(t, newTestMicroblogSource(t, "https://mirror.example.com").IsAvailable())

	disabled := NewMicroblogSource(config.Microblog{Enabled: false, BaseURL: "https://mirror.example.com"}, testSourceLogger(t))
	assert.False(t, disabled.IsAvailable())
}

func TestParseStatCount(t *testing.T) {
	assert.Equal(t, 1234, parseStatCount(" 1,234 "))
	assert.Equal(t, 7, parseStatCount("7"))
	assert.Equal(t, 0, parseStatCount(""))
	assert.Equal(t, 0, parseStatCount("n/a"))
}
