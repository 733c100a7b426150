package service

import (
	"context"
	"testing"
	"time"

	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzedNewsRepo struct {
	repository.NewsRepository

	analyzed []entity.NewsRecord
	pending  int64
}

func (f *fakeAnalyzedNewsRepo) FindAnalyzedByTicker(ctx context.Context, ticker string) ([]entity.NewsRecord, error) {
	return f.analyzed, nil
}

func (f *fakeAnalyzedNewsRepo) CountByStatus(ctx context.Context, ticker string) (repository.NewsCounts, error) {
	return repository.NewsCounts{
		Pending:  f.pending,
		Analyzed: int64(len(f.analyzed)),
		Total:    f.pending + int64(len(f.analyzed)),
	}, nil
}

type fakeSentimentRepo struct {
	stored *entity.TickerSentiment
}

func (f *fakeSentimentRepo) Get(ctx context.Context, ticker string) (*entity.TickerSentiment, error) {
	return f.stored, nil
}

func (f *fakeSentimentRepo) Upsert(ctx context.Context, sentiment *entity.TickerSentiment) error {
	f.stored = sentiment
	return nil
}

type captureNotifier struct {
	messages []string
}

func (c *captureNotifier) SendMessage(text string) error {
	c.messages = append(c.messages, text)
	return nil
}

func analyzedRecord(id uint, category scoring.Category, analyzedAt time.Time) entity.NewsRecord {
	return entity.NewsRecord{
		ID:         id,
		Ticker:     "AAPL",
		Title:      "headline",
		Summary:    "summary",
		Status:     entity.NewsStatusAnalyzed,
		Sentiment:  string(category),
		AnalyzedAt: &analyzedAt,
	}
}

func TestRecomputeUpsertsAggregate(t *testing.T) {
	now := time.Now()
	newsRepo := &fakeAnalyzedNewsRepo{
		analyzed: []entity.NewsRecord{
			analyzedRecord(1, scoring.HighlyPositive, now),
			analyzedRecord(2, scoring.Positive, now),
			analyzedRecord(3, scoring.Positive, now),
			analyzedRecord(4, scoring.Neutral, now),
			analyzedRecord(5, scoring.Negative, now),
		},
		pending: 2,
	}
	sentimentRepo := &fakeSentimentRepo{}
	notifier := &captureNotifier{}

	svc := NewSentimentService(scoring.NewEngine(0, 0), sentimentRepo, newsRepo, notifier, testLogger(t))

	sentiment, err := svc.Recompute(context.Background(), "aapl")
	require.NoError(t, err)
	require.NotNil(t, sentiment)

	assert.Equal(t, "AAPL", sentiment.Ticker)
	assert.InDelta(t, 0.6, sentiment.Score, 1e-9)
	assert.InDelta(t, 0.3, sentiment.NormalizedScore, 1e-9)
	assert.Equal(t, scoring.SignalBuy, sentiment.Signal)
	assert.Equal(t, 5, sentiment.TotalAnalyzed)
	assert.Equal(t, 2, sentiment.TotalPending)
	require.NotNil(t, sentimentRepo.stored)
	assert.Equal(t, sentiment.Signal, sentimentRepo.stored.Signal)

	// First computation counts as a signal change from nothing.
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "AAPL")
	assert.Contains(t, notifier.messages[0], scoring.SignalBuy)
}

func TestRecomputeNoAnalyzedNews(t *testing.T) {
	svc := NewSentimentService(scoring.NewEngine(0, 0), &fakeSentimentRepo{}, &fakeAnalyzedNewsRepo{}, &captureNotifier{}, testLogger(t))

	sentiment, err := svc.Recompute(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Nil(t, sentiment)
}

func TestRecomputeNotifiesOnlyOnSignalChange(t *testing.T) {
	now := time.Now()
	newsRepo := &fakeAnalyzedNewsRepo{
		analyzed: []entity.NewsRecord{
			analyzedRecord(1, scoring.Positive, now),
			analyzedRecord(2, scoring.Positive, now),
		},
	}
	sentimentRepo := &fakeSentimentRepo{
		stored: &entity.TickerSentiment{Ticker: "AAPL", Signal: scoring.SignalStrongBuy},
	}
	notifier := &captureNotifier{}

	svc := NewSentimentService(scoring.NewEngine(0, 0), sentimentRepo, newsRepo, notifier, testLogger(t))

	// Two Positive items normalize to 0.5, which stays STRONG BUY.
	_, err := svc.Recompute(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, notifier.messages)
}

func TestRecomputeSkipsUnparseableSentiment(t *testing.T) {
	now := time.Now()
	corrupt := analyzedRecord(1, scoring.Positive, now)
	corrupt.Sentiment = "bullish"

	newsRepo := &fakeAnalyzedNewsRepo{
		analyzed: []entity.NewsRecord{
			corrupt,
			analyzedRecord(2, scoring.Neutral, now),
		},
	}
	svc := NewSentimentService(scoring.NewEngine(0, 0), &fakeSentimentRepo{}, newsRepo, &captureNotifier{}, testLogger(t))

	sentiment, err := svc.Recompute(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, sentiment)
	assert.Equal(t, 1, sentiment.TotalAnalyzed)
}

func TestGetInvalidSymbol(t *testing.T) {
	svc := NewSentimentService(scoring.NewEngine(0, 0), &fakeSentimentRepo{}, &fakeAnalyzedNewsRepo{}, nil, testLogger(t))

	_, err := svc.Get(context.Background(), "not a symbol!")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}
