package newsource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

// MicroblogSource scrapes ticker mentions from a Nitter-style microblog
// mirror. There is no official API, so availability depends entirely on
// a configured mirror instance.
type MicroblogSource struct {
	cfg    config.Microblog
	client *http.Client
	logger *logger.Logger
}

// NewMicroblogSource creates the microblog adapter.
func NewMicroblogSource(cfg config.Microblog, log *logger.Logger) *MicroblogSource {
	return &MicroblogSource{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: log,
	}
}

// Name returns the adapter identifier.
func (s *MicroblogSource) Name() string {
	return SourceTypeMicroblog
}

// IsAvailable reports whether a mirror instance is configured.
func (s *MicroblogSource) IsAvailable() bool {
	return s.cfg.Enabled && s.cfg.BaseURL != ""
}

// Fetch searches the mirror for cashtag mentions of the ticker.
func (s *MicroblogSource) Fetch(ctx context.Context, ticker string, from, to time.Time) ([]NewsItem, error) {
	var items []NewsItem
	seen := make(map[string]bool)

	for _, term := range []string{"$" + ticker, "#" + ticker} {
		doc, err := s.searchPage(ctx, term)
		if err != nil {
			s.logger.Warn("Microblog search failed",
				logger.StringField("term", term),
				logger.ErrorField(err),
			)
			continue
		}

		doc.Find(".timeline-item").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if s.cfg.MaxResults > 0 && len(items) >= s.cfg.MaxResults {
				return false
			}

			item, ok := s.parsePost(sel, from, to)
			if !ok || seen[item.URL] {
				return true
			}
			seen[item.URL] = true
			items = append(items, item)
			return true
		})
	}

	s.logger.Info("Retrieved microblog posts",
		logger.StringField("ticker", ticker),
		logger.IntField("count", len(items)),
	)
	return items, nil
}

func (s *MicroblogSource) searchPage(ctx context.Context, term string) (*goquery.Document, error) {
	q := url.Values{}
	q.Set("f", "tweets")
	q.Set("q", term)

	reqURL := fmt.Sprintf("%s/search?%s", s.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *MicroblogSource) parsePost(sel *goquery.Selection, from, to time.Time) (NewsItem, bool) {
	content := strings.TrimSpace(sel.Find(".tweet-content").Text())
	if content == "" {
		return NewsItem{}, false
	}

	author := strings.TrimPrefix(strings.TrimSpace(sel.Find(".username").First().Text()), "@")

	dateLink := sel.Find(".tweet-date a").First()
	postedAt, ok := dateLink.Attr("title")
	if !ok {
		return NewsItem{}, false
	}
	// Mirror timestamps look like "Jan 2, 2006 · 3:04 PM UTC".
	published, err := time.Parse("Jan 2, 2006 · 3:04 PM MST", postedAt)
	if err != nil {
		return NewsItem{}, false
	}
	if published.Before(from) || published.After(to) {
		return NewsItem{}, false
	}

	href, _ := dateLink.Attr("href")
	likes := parseStatCount(sel.Find(".icon-heart").Parent().Text())
	if likes < s.cfg.MinLikes {
		return NewsItem{}, false
	}
	retweets := parseStatCount(sel.Find(".icon-retweet").Parent().Text())
	engagement := likes + retweets

	item := NewsItem{
		Title:           utils.Truncate(content, 120),
		Summary:         content,
		PublishedDate:   published.UTC().Format(time.RFC3339),
		Source:          "microblog",
		SourceType:      SourceTypeMicroblog,
		URL:             s.cfg.BaseURL + href,
		EngagementScore: &engagement,
		Author:          author,
	}
	if err := item.Normalize(); err != nil {
		return NewsItem{}, false
	}
	return item, true
}

// parseStatCount reads counts like "1,234" from a stat cell.
func parseStatCount(s string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
