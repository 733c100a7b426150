package newsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/ratelimit"
	"golang-sentiment-tracker/pkg/utils"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const marketNewsDateFormat = "20060102T1504"

// marketNewsResponse mirrors the provider's NEWS_SENTIMENT payload.
type marketNewsResponse struct {
	Feed []struct {
		Title           string `json:"title"`
		Summary         string `json:"summary"`
		TimePublished   string `json:"time_published"`
		Source          string `json:"source"`
		URL             string `json:"url"`
		TickerSentiment []struct {
			Ticker         string `json:"ticker"`
			RelevanceScore string `json:"relevance_score"`
		} `json:"ticker_sentiment"`
	} `json:"feed"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// MarketNewsSource fetches ticker news from the market-news provider
// API. Responses are cached in Redis for the configured TTL and calls
// go through a request limiter plus the provider's cooldown tracker.
type MarketNewsSource struct {
	cfg      config.MarketNews
	client   *http.Client
	logger   *logger.Logger
	limiter  *rate.Limiter
	tracker  *ratelimit.CooldownTracker
	cache    *redis.Client
	cacheTTL time.Duration
	retry    utils.RetryPolicy
}

// NewMarketNewsSource creates the market-news adapter. The Redis client
// may be nil, in which case response caching is disabled.
func NewMarketNewsSource(cfg config.MarketNews, log *logger.Logger, tracker *ratelimit.CooldownTracker, cache *redis.Client) *MarketNewsSource {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 5
	}

	cacheTTL := 15 * time.Minute
	if cfg.CacheTTL != "" {
		if ttl, err := time.ParseDuration(cfg.CacheTTL); err == nil {
			cacheTTL = ttl
		}
	}

	retry := utils.DefaultRetryPolicy()
	retry.Retryable = func(err error) bool {
		return !errors.Is(err, ErrServiceCooldown)
	}

	return &MarketNewsSource{
		cfg:      cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   log,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		tracker:  tracker,
		cache:    cache,
		cacheTTL: cacheTTL,
		retry:    retry,
	}
}

// Name returns the adapter identifier.
func (s *MarketNewsSource) Name() string {
	return SourceTypeMarketNews
}

// IsAvailable reports whether the provider API key is configured.
func (s *MarketNewsSource) IsAvailable() bool {
	return s.cfg.APIKey != ""
}

// Fetch retrieves news for the ticker in [from, to].
func (s *MarketNewsSource) Fetch(ctx context.Context, ticker string, from, to time.Time) ([]NewsItem, error) {
	if s.tracker != nil && !s.tracker.IsAvailable() {
		return nil, fmt.Errorf("%s: %w", s.Name(), ErrServiceCooldown)
	}

	cacheKey := fmt.Sprintf("news:market:%s:%s:%s", ticker, from.Format(marketNewsDateFormat), to.Format(marketNewsDateFormat))
	if items, ok := s.cacheGet(ctx, cacheKey); ok {
		s.logger.Debug("Market news cache hit", logger.StringField("ticker", ticker))
		return items, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request limiter wait: %w", err)
	}

	reqURL := s.buildURL(ticker, from, to)

	var body []byte
	err := s.retry.Do(ctx, func() error {
		var fetchErr error
		body, fetchErr = s.get(ctx, reqURL)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market news: %w", err)
	}

	var resp marketNewsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid market news response: %w", err)
	}

	if resp.ErrorMessage != "" {
		return nil, fmt.Errorf("market news API error: %s", resp.ErrorMessage)
	}

	// The provider reports quota exhaustion inside a 200 body.
	if msg := resp.Note + resp.Information; msg != "" && looksLikeRateLimit(msg) {
		if s.tracker != nil {
			s.tracker.EnterCooldown(msg, time.Duration(s.cfg.CooldownSeconds)*time.Second)
		}
		return nil, fmt.Errorf("%s: %w", s.Name(), ErrServiceCooldown)
	}

	items := s.parseFeed(ticker, &resp)
	s.cacheSet(ctx, cacheKey, items)

	s.logger.Info("Retrieved market news",
		logger.StringField("ticker", ticker),
		logger.IntField("count", len(items)),
	)
	return items, nil
}

func (s *MarketNewsSource) buildURL(ticker string, from, to time.Time) string {
	q := url.Values{}
	q.Set("function", "NEWS_SENTIMENT")
	q.Set("tickers", ticker)
	q.Set("apikey", s.cfg.APIKey)
	q.Set("time_from", from.Format(marketNewsDateFormat))
	q.Set("time_to", to.Format(marketNewsDateFormat))
	return s.cfg.BaseURL + "?" + q.Encode()
}

func (s *MarketNewsSource) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		if s.tracker != nil {
			s.tracker.EnterCooldown("HTTP 429 from market news API", time.Duration(s.cfg.CooldownSeconds)*time.Second)
		}
		return nil, fmt.Errorf("%s: %w", s.Name(), ErrServiceCooldown)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (s *MarketNewsSource) parseFeed(ticker string, resp *marketNewsResponse) []NewsItem {
	items := make([]NewsItem, 0, len(resp.Feed))
	for _, raw := range resp.Feed {
		item := NewsItem{
			Title:         raw.Title,
			Summary:       raw.Summary,
			PublishedDate: raw.TimePublished,
			Source:        raw.Source,
			SourceType:    SourceTypeMarketNews,
			URL:           raw.URL,
		}

		for _, ts := range raw.TickerSentiment {
			if !strings.EqualFold(ts.Ticker, ticker) {
				continue
			}
			if score, err := strconv.ParseFloat(ts.RelevanceScore, 64); err == nil {
				item.RelevanceScore = &score
			}
			break
		}

		if err := item.Normalize(); err != nil {
			s.logger.Warn("Skipping invalid market news item", logger.ErrorField(err))
			continue
		}
		items = append(items, item)
	}
	return items
}

func (s *MarketNewsSource) cacheGet(ctx context.Context, key string) ([]NewsItem, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var items []NewsItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *MarketNewsSource) cacheSet(ctx context.Context, key string, items []NewsItem) {
	if s.cache == nil || len(items) == 0 {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to cache market news", logger.ErrorField(err))
	}
}

// looksLikeRateLimit detects the provider's quota wording inside an
// otherwise successful response.
func looksLikeRateLimit(msg string) bool {
	lowered := strings.ToLower(msg)
	return strings.Contains(lowered, "rate limit") ||
		strings.Contains(lowered, "call frequency") ||
		strings.Contains(lowered, "quota") ||
		strings.Contains(lowered, "premium")
}
