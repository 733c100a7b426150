package newsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

var defaultSubreddits = []string{"wallstreetbets", "stocks", "investing", "stockmarket"}

// forumListing mirrors the forum's search API response.
type forumListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				SelfText    string  `json:"selftext"`
				Permalink   string  `json:"permalink"`
				Author      string  `json:"author"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Subreddit   string  `json:"subreddit"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ForumSource fetches ticker discussion posts from a Reddit-style forum
// search API. Listing responses are cached in memory for a few minutes
// since the same subreddits are polled for every watched ticker.
type ForumSource struct {
	cfg        config.Forum
	subreddits []string
	client     *http.Client
	logger     *logger.Logger
	cache      *gocache.Cache
}

// NewForumSource creates the forum adapter.
func NewForumSource(cfg config.Forum, log *logger.Logger) *ForumSource {
	subreddits := cfg.Subreddits
	if len(subreddits) == 0 {
		subreddits = defaultSubreddits
	}
	return &ForumSource{
		cfg:        cfg,
		subreddits: subreddits,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     log,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Name returns the adapter identifier.
func (s *ForumSource) Name() string {
	return SourceTypeForum
}

// IsAvailable reports whether the forum source is enabled and has the
// user agent the API requires.
func (s *ForumSource) IsAvailable() bool {
	return s.cfg.Enabled && s.cfg.UserAgent != ""
}

// Fetch retrieves posts mentioning the ticker across the configured
// subreddits. A failing subreddit is logged and skipped.
func (s *ForumSource) Fetch(ctx context.Context, ticker string, from, to time.Time) ([]NewsItem, error) {
	var items []NewsItem

	for _, subreddit := range s.subreddits {
		listing, err := s.search(ctx, subreddit, ticker)
		if err != nil {
			s.logger.Warn("Forum subreddit search failed",
				logger.StringField("subreddit", subreddit),
				logger.ErrorField(err),
			)
			continue
		}

		for _, child := range listing.Data.Children {
			post := child.Data
			created := time.Unix(int64(post.CreatedUTC), 0).UTC()
			if created.Before(from) || created.After(to) {
				continue
			}
			if post.Score < s.cfg.MinScore {
				continue
			}

			engagement := post.Score + post.NumComments
			summary := post.SelfText
			if summary == "" {
				summary = post.Title
			}

			item := NewsItem{
				Title:           post.Title,
				Summary:         summary,
				PublishedDate:   created.Format(time.RFC3339),
				Source:          "r/" + post.Subreddit,
				SourceType:      SourceTypeForum,
				URL:             s.cfg.BaseURL + post.Permalink,
				EngagementScore: &engagement,
				Author:          post.Author,
			}
			if err := item.Normalize(); err != nil {
				continue
			}
			items = append(items, item)
		}
	}

	s.logger.Info("Retrieved forum posts",
		logger.StringField("ticker", ticker),
		logger.IntField("count", len(items)),
	)
	return items, nil
}

func (s *ForumSource) search(ctx context.Context, subreddit, ticker string) (*forumListing, error) {
	cacheKey := subreddit + ":" + ticker
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*forumListing), nil
	}

	limit := s.cfg.LimitPerSubreddit
	if limit <= 0 {
		limit = 25
	}

	q := url.Values{}
	q.Set("q", ticker)
	q.Set("restrict_sr", "1")
	q.Set("sort", "relevance")
	q.Set("t", "month")
	q.Set("limit", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", s.cfg.BaseURL, subreddit, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var listing forumListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("invalid listing response: %w", err)
	}

	s.cache.Set(cacheKey, &listing, gocache.DefaultExpiration)
	return &listing, nil
}
