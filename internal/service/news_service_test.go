package service

import (
	"context"
	"testing"
	"time"

	"golang-sentiment-tracker/internal/aggregator"
	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/newsource"
	"golang-sentiment-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	items []newsource.NewsItem
	err   error
	calls int
}

func (s *stubSource) Name() string      { return s.name }
func (s *stubSource) IsAvailable() bool { return true }

func (s *stubSource) Fetch(ctx context.Context, ticker string, from, to time.Time) ([]newsource.NewsItem, error) {
	s.calls++
	return s.items, s.err
}

type fakeWatchlistRepo struct {
	repository.WatchlistRepository

	tickers []entity.WatchlistTicker
}

func (f *fakeWatchlistRepo) GetAll(ctx context.Context, includeInactive bool) ([]entity.WatchlistTicker, error) {
	return f.tickers, nil
}

func (f *fakeWatchlistRepo) GetBySymbol(ctx context.Context, symbol string) (*entity.WatchlistTicker, error) {
	for i := range f.tickers {
		if f.tickers[i].Symbol == symbol {
			return &f.tickers[i], nil
		}
	}
	return nil, repository.ErrTickerNotFound
}

type fakeStoreNewsRepo struct {
	repository.NewsRepository

	stored []entity.NewsRecord
	seen   map[string]bool
}

func newFakeStoreNewsRepo() *fakeStoreNewsRepo {
	return &fakeStoreNewsRepo{seen: make(map[string]bool)}
}

func (f *fakeStoreNewsRepo) CreateIgnoreConflict(ctx context.Context, record *entity.NewsRecord) (bool, error) {
	if record.URL != nil {
		if f.seen[*record.URL] {
			return false, nil
		}
		f.seen[*record.URL] = true
	}
	f.stored = append(f.stored, *record)
	return true, nil
}

func newsItem(title, url string) newsource.NewsItem {
	return newsource.NewsItem{
		Title:         title,
		Summary:       "summary for " + title,
		PublishedDate: time.Now().UTC().Format(time.RFC3339),
		SourceType:    newsource.SourceTypeMarketNews,
		URL:           url,
	}
}

func TestFetchAllNewsPersistsPendingRecords(t *testing.T) {
	log := testLogger(t)
	source := &stubSource{
		name: newsource.SourceTypeMarketNews,
		items: []newsource.NewsItem{
			newsItem("Earnings beat", "https://news.example.com/1"),
			newsItem("New product line", "https://news.example.com/2"),
		},
	}
	agg := aggregator.New([]newsource.Source{source}, log)
	newsRepo := newFakeStoreNewsRepo()
	watchlistRepo := &fakeWatchlistRepo{tickers: []entity.WatchlistTicker{
		{Symbol: "AAPL", IsActive: true},
	}}

	svc := NewNewsService(config.Scheduler{}, agg, newsRepo, watchlistRepo, log)

	summary, err := svc.FetchAllNews(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TickersProcessed)
	assert.Equal(t, 2, summary.TotalFetched)
	assert.Equal(t, 2, summary.TotalStored)
	assert.Equal(t, map[string]int{"AAPL": 2}, summary.StoredPerTicker)

	require.Len(t, newsRepo.stored, 2)
	for _, record := range newsRepo.stored {
		assert.Equal(t, "AAPL", record.Ticker)
		assert.Equal(t, entity.NewsStatusPending, record.Status)
		require.NotNil(t, record.URL)
	}
}

func TestFetchAllNewsSkipsAlreadyStored(t *testing.T) {
	log := testLogger(t)
	source := &stubSource{
		name:  newsource.SourceTypeMarketNews,
		items: []newsource.NewsItem{newsItem("Earnings beat", "https://news.example.com/1")},
	}
	agg := aggregator.New([]newsource.Source{source}, log)
	newsRepo := newFakeStoreNewsRepo()
	watchlistRepo := &fakeWatchlistRepo{tickers: []entity.WatchlistTicker{
		{Symbol: "AAPL", IsActive: true},
	}}

	svc := NewNewsService(config.Scheduler{}, agg, newsRepo, watchlistRepo, log)

	first, err := svc.FetchAllNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalStored)

	second, err := svc.FetchAllNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalFetched)
	assert.Equal(t, 0, second.TotalStored)
	assert.Len(t, newsRepo.stored, 1)
}

func TestFetchTickerNewsUnknownTicker(t *testing.T) {
	log := testLogger(t)
	agg := aggregator.New(nil, log)
	svc := NewNewsService(config.Scheduler{}, agg, newFakeStoreNewsRepo(), &fakeWatchlistRepo{}, log)

	_, err := svc.FetchTickerNews(context.Background(), "AAPL", nil)
	assert.ErrorIs(t, err, repository.ErrTickerNotFound)
}

func TestFetchTickerNewsStoresItems(t *testing.T) {
	log := testLogger(t)
	source := &stubSource{
		name:  newsource.SourceTypeMarketNews,
		items: []newsource.NewsItem{newsItem("Guidance raised", "https://news.example.com/9")},
	}
	agg := aggregator.New([]newsource.Source{source}, log)
	newsRepo := newFakeStoreNewsRepo()
	watchlistRepo := &fakeWatchlistRepo{tickers: []entity.WatchlistTicker{
		{Symbol: "MSFT", IsActive: true},
	}}

	svc := NewNewsService(config.Scheduler{}, agg, newsRepo, watchlistRepo, log)

	summary, err := svc.FetchTickerNews(context.Background(), "msft", nil)
	require.NoError(t, err)

	assert.Equal(t, "MSFT", summary.Ticker)
	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, 1, summary.Stored)
	require.Len(t, newsRepo.stored, 1)
	assert.Equal(t, "MSFT", newsRepo.stored[0].Ticker)
}

func TestFetchAllNewsSourceFailureDoesNotAbort(t *testing.T) {
	log := testLogger(t)
	failing := &stubSource{name: newsource.SourceTypeForum, err: assert.AnError}
	healthy := &stubSource{
		name:  newsource.SourceTypeMarketNews,
		items: []newsource.NewsItem{newsItem("Still works", "https://news.example.com/ok")},
	}
	agg := aggregator.New([]newsource.Source{failing, healthy}, log)
	newsRepo := newFakeStoreNewsRepo()
	watchlistRepo := &fakeWatchlistRepo{tickers: []entity.WatchlistTicker{
		{Symbol: "AAPL", IsActive: true},
	}}

	svc := NewNewsService(config.Scheduler{}, agg, newsRepo, watchlistRepo, log)

	summary, err := svc.FetchAllNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalStored)
}
