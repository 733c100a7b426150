package newsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// RSSSource fetches ticker headlines from a news RSS search feed. Feed
// entries often carry only a headline, so the adapter can optionally
// fetch the linked article and extract readable text for the summary.
type RSSSource struct {
	cfg    config.RSS
	parser *gofeed.Parser
	client *http.Client
	logger *logger.Logger
}

// NewRSSSource creates the RSS adapter.
func NewRSSSource(cfg config.RSS, log *logger.Logger) *RSSSource {
	return &RSSSource{
		cfg:    cfg,
		parser: gofeed.NewParser(),
		client: &http.Client{Timeout: 30 * time.Second},
		logger: log,
	}
}

// Name returns the adapter identifier.
func (s *RSSSource) Name() string {
	return "rss"
}

// IsAvailable reports whether the feed base URL is configured.
func (s *RSSSource) IsAvailable() bool {
	return s.cfg.Enabled && s.cfg.BaseURL != ""
}

// Fetch retrieves feed entries mentioning the ticker within the window.
func (s *RSSSource) Fetch(ctx context.Context, ticker string, from, to time.Time) ([]NewsItem, error) {
	q := url.Values{}
	q.Set("q", ticker+" stock")
	feedURL := fmt.Sprintf("%s/rss/search?%s", s.cfg.BaseURL, q.Encode())

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	maxItems := s.cfg.MaxItems
	if maxItems <= 0 {
		maxItems = 20
	}

	var items []NewsItem
	for _, entry := range feed.Items {
		if len(items) >= maxItems {
			break
		}
		if entry.PublishedParsed == nil {
			continue
		}
		published := entry.PublishedParsed.UTC()
		if published.Before(from) || published.After(to) {
			continue
		}

		summary := utils.CollapseWhitespace(entry.Description)
		if summary == "" && s.cfg.EnrichContent {
			summary = s.extractArticleText(ctx, entry.Link)
		}
		if summary == "" {
			summary = entry.Title
		}

		sourceName := ""
		if parsed, err := url.Parse(entry.Link); err == nil {
			sourceName = parsed.Hostname()
		}

		item := NewsItem{
			Title:         utils.CleanToValidUTF8(entry.Title),
			Summary:       utils.Truncate(summary, 2000),
			PublishedDate: published.Format(time.RFC3339),
			Source:        sourceName,
			SourceType:    SourceTypeMarketNews,
			URL:           entry.Link,
		}
		if err := item.Normalize(); err != nil {
			s.logger.Warn("Skipping invalid RSS item", logger.ErrorField(err))
			continue
		}
		items = append(items, item)
	}

	s.logger.Info("Retrieved RSS news",
		logger.StringField("ticker", ticker),
		logger.IntField("count", len(items)),
	)
	return items, nil
}

// extractArticleText downloads the article and pulls the readable main
// content out of the page. Failures degrade to an empty summary.
func (s *RSSSource) extractArticleText(ctx context.Context, link string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		s.logger.Debug("Failed to extract article content", logger.ErrorField(err), logger.StringField("url", link))
		return ""
	}

	content := doc.Content()
	htmlDoc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(content)))
	if err != nil {
		return ""
	}

	text := utils.CollapseWhitespace(strings.TrimSpace(htmlDoc.Text()))
	return utils.CleanToValidUTF8(text)
}
