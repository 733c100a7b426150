package service

import (
	"context"
	"time"

	"golang-sentiment-tracker/internal/aggregator"
	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/newsource"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/utils"
)

const (
	defaultFetchWindowHours       = 6
	defaultTickerFetchWindowHours = 24
)

// FetchSummary is the result of a watchlist-wide fetch run.
type FetchSummary struct {
	TickersProcessed int            `json:"tickers_processed"`
	TotalFetched     int            `json:"total_fetched"`
	TotalStored      int            `json:"total_stored"`
	StoredPerTicker  map[string]int `json:"stored_per_ticker,omitempty"`
}

// TickerFetchSummary is the result of a single-ticker fetch.
type TickerFetchSummary struct {
	Ticker  string `json:"ticker"`
	Fetched int    `json:"fetched"`
	Stored  int    `json:"stored"`
}

// NewsService defines the interface for news ingestion and retrieval.
type NewsService interface {
	FetchAllNews(ctx context.Context) (*FetchSummary, error)
	FetchTickerNews(ctx context.Context, symbol string, sourceFilter []string) (*TickerFetchSummary, error)
	GetNews(ctx context.Context, symbol, status string, limit, offset int) ([]entity.NewsRecord, repository.NewsCounts, error)
}

// NewNewsService creates a new instance of NewsService.
func NewNewsService(
	cfg config.Scheduler,
	agg *aggregator.Aggregator,
	newsRepo repository.NewsRepository,
	watchlistRepo repository.WatchlistRepository,
	log *logger.Logger,
) NewsService {
	fetchWindow := cfg.FetchWindowHours
	if fetchWindow <= 0 {
		fetchWindow = defaultFetchWindowHours
	}
	tickerWindow := cfg.TickerFetchWindowHours
	if tickerWindow <= 0 {
		tickerWindow = defaultTickerFetchWindowHours
	}

	return &newsService{
		aggregator:    agg,
		newsRepo:      newsRepo,
		watchlistRepo: watchlistRepo,
		logger:        log,
		fetchWindow:   time.Duration(fetchWindow) * time.Hour,
		tickerWindow:  time.Duration(tickerWindow) * time.Hour,
	}
}

type newsService struct {
	aggregator    *aggregator.Aggregator
	newsRepo      repository.NewsRepository
	watchlistRepo repository.WatchlistRepository
	logger        *logger.Logger
	fetchWindow   time.Duration
	tickerWindow  time.Duration
}

// FetchAllNews fetches recent news for every active watchlist ticker and
// persists the new items as pending. One ticker failing never stops the
// sweep over the rest.
func (s *newsService) FetchAllNews(ctx context.Context) (*FetchSummary, error) {
	tickers, err := s.watchlistRepo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	summary := &FetchSummary{StoredPerTicker: make(map[string]int)}
	to := time.Now()
	from := to.Add(-s.fetchWindow)

	for _, ticker := range tickers {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		items := s.aggregator.FetchAll(ctx, ticker.Symbol, from, to, nil)
		stored := s.persistItems(ctx, ticker.Symbol, items)

		summary.TickersProcessed++
		summary.TotalFetched += len(items)
		summary.TotalStored += stored
		if stored > 0 {
			summary.StoredPerTicker[ticker.Symbol] = stored
		}
	}

	s.logger.Info("Watchlist fetch completed",
		logger.IntField("tickers", summary.TickersProcessed),
		logger.IntField("fetched", summary.TotalFetched),
		logger.IntField("stored", summary.TotalStored))
	return summary, nil
}

// FetchTickerNews fetches news for one watchlist ticker over the wider
// per-ticker window, optionally restricted to named sources.
func (s *newsService) FetchTickerNews(ctx context.Context, symbol string, sourceFilter []string) (*TickerFetchSummary, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ticker, err := s.watchlistRepo.GetBySymbol(ctx, normalized)
	if err != nil {
		return nil, err
	}

	to := time.Now()
	from := to.Add(-s.tickerWindow)

	items := s.aggregator.FetchAll(ctx, ticker.Symbol, from, to, sourceFilter)
	stored := s.persistItems(ctx, ticker.Symbol, items)

	return &TickerFetchSummary{
		Ticker:  ticker.Symbol,
		Fetched: len(items),
		Stored:  stored,
	}, nil
}

func (s *newsService) GetNews(ctx context.Context, symbol, status string, limit, offset int) ([]entity.NewsRecord, repository.NewsCounts, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, repository.NewsCounts{}, err
	}
	if _, err := s.watchlistRepo.GetBySymbol(ctx, normalized); err != nil {
		return nil, repository.NewsCounts{}, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.newsRepo.FindByTicker(ctx, normalized, status, limit, offset)
	if err != nil {
		return nil, repository.NewsCounts{}, err
	}
	counts, err := s.newsRepo.CountByStatus(ctx, normalized)
	if err != nil {
		return nil, repository.NewsCounts{}, err
	}
	return records, counts, nil
}

// persistItems writes aggregated items as pending records. The URL
// unique index drops items seen in a previous run; a failed insert is
// logged and skipped so one bad row cannot sink the batch.
func (s *newsService) persistItems(ctx context.Context, ticker string, items []newsource.NewsItem) int {
	var stored int
	for _, item := range items {
		record := toNewsRecord(ticker, item)
		created, err := s.newsRepo.CreateIgnoreConflict(ctx, record)
		if err != nil {
			s.logger.Warn("Failed to store news record",
				logger.StringField("ticker", ticker),
				logger.StringField("title", utils.Truncate(item.Title, 80)),
				logger.ErrorField(err))
			continue
		}
		if created {
			stored++
		}
	}
	return stored
}

func toNewsRecord(ticker string, item newsource.NewsItem) *entity.NewsRecord {
	record := &entity.NewsRecord{
		Ticker:          ticker,
		Title:           utils.CleanToValidUTF8(item.Title),
		Summary:         utils.CleanToValidUTF8(item.Summary),
		PublishedDate:   item.PublishedDate,
		Source:          item.Source,
		SourceType:      item.SourceType,
		RelevanceScore:  item.RelevanceScore,
		EngagementScore: item.EngagementScore,
		Author:          item.Author,
		Status:          entity.NewsStatusPending,
	}
	if item.URL != "" {
		url := item.URL
		record.URL = &url
	}
	return record
}
