package service

import (
	"context"

	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/newsource"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/scoring"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/telegram"
)

// SentimentService defines the interface for the per-ticker sentiment
// aggregate.
type SentimentService interface {
	Get(ctx context.Context, symbol string) (*entity.TickerSentiment, error)
	Recompute(ctx context.Context, symbol string) (*entity.TickerSentiment, error)
}

// NewSentimentService creates a new instance of SentimentService.
func NewSentimentService(
	engine *scoring.Engine,
	sentimentRepo repository.SentimentRepository,
	newsRepo repository.NewsRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) SentimentService {
	if notifier == nil {
		notifier = telegram.NoopNotifier{}
	}
	return &sentimentService{
		engine:        engine,
		sentimentRepo: sentimentRepo,
		newsRepo:      newsRepo,
		notifier:      notifier,
		logger:        log,
	}
}

type sentimentService struct {
	engine        *scoring.Engine
	sentimentRepo repository.SentimentRepository
	newsRepo      repository.NewsRepository
	notifier      telegram.Notifier
	logger        *logger.Logger
}

func (s *sentimentService) Get(ctx context.Context, symbol string) (*entity.TickerSentiment, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.sentimentRepo.Get(ctx, normalized)
}

// Recompute rebuilds the aggregate wholesale from every analyzed record
// for the ticker and upserts it. Returns nil when the ticker has no
// analyzed news yet; an existing aggregate is left untouched in that
// case. A signal flip triggers a notification.
func (s *sentimentService) Recompute(ctx context.Context, symbol string) (*entity.TickerSentiment, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	records, err := s.newsRepo.FindAnalyzedByTicker(ctx, normalized)
	if err != nil {
		return nil, err
	}

	score := s.engine.CalculateWithTrend(toResults(normalized, records))
	if score == nil {
		return nil, nil
	}

	counts, err := s.newsRepo.CountByStatus(ctx, normalized)
	if err != nil {
		return nil, err
	}

	previous, err := s.sentimentRepo.Get(ctx, normalized)
	if err != nil {
		return nil, err
	}

	sentiment := &entity.TickerSentiment{
		Ticker:            normalized,
		Score:             score.Score,
		NormalizedScore:   score.NormalizedScore,
		SentimentLabel:    score.SentimentLabel,
		Signal:            score.Signal,
		Confidence:        score.Confidence,
		TimeWeightedScore: score.TimeWeightedScore,
		Trend:             score.Trend,
		PositiveCount:     score.PositiveCount,
		NegativeCount:     score.NegativeCount,
		NeutralCount:      score.NeutralCount,
		TotalAnalyzed:     score.TotalAnalyzed,
		TotalPending:      int(counts.Pending),
	}
	if err := s.sentimentRepo.Upsert(ctx, sentiment); err != nil {
		return nil, err
	}

	s.logger.Info("Ticker sentiment recomputed",
		logger.StringField("ticker", normalized),
		logger.StringField("signal", sentiment.Signal),
		logger.Float64Field("normalized_score", sentiment.NormalizedScore),
		logger.IntField("total_analyzed", sentiment.TotalAnalyzed))

	s.notifyOnSignalChange(previous, sentiment)
	return sentiment, nil
}

func (s *sentimentService) notifyOnSignalChange(previous, current *entity.TickerSentiment) {
	oldSignal := ""
	if previous != nil {
		oldSignal = previous.Signal
	}
	if oldSignal == current.Signal {
		return
	}

	msg := telegram.FormatSignalChange(
		current.Ticker, oldSignal, current.Signal,
		current.SentimentLabel, current.NormalizedScore, current.TotalAnalyzed)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("Failed to send signal change notification",
			logger.StringField("ticker", current.Ticker),
			logger.ErrorField(err))
	}
}

// toResults adapts analyzed records into scoring results. Records whose
// stored sentiment no longer parses are skipped rather than scored.
func toResults(ticker string, records []entity.NewsRecord) []scoring.Result {
	results := make([]scoring.Result, 0, len(records))
	for _, record := range records {
		category, ok := scoring.ParseCategory(record.Sentiment)
		if !ok {
			continue
		}

		analyzedAt := record.FetchedAt
		if record.AnalyzedAt != nil {
			analyzedAt = *record.AnalyzedAt
		}

		results = append(results, scoring.Result{
			News: newsource.NewsItem{
				Title:         record.Title,
				Summary:       record.Summary,
				PublishedDate: record.PublishedDate,
				Source:        record.Source,
				SourceType:    record.SourceType,
			},
			Analysis: &scoring.Analysis{
				Category:      category,
				Justification: record.Justification,
				KeyTopics:     record.KeyTopics,
			},
			Ticker:     ticker,
			AnalyzedAt: analyzedAt,
		})
	}
	return results
}
