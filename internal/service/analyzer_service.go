package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/utils"
)

const defaultAnalyzeBatchSize = 25

// AnalyzeSummary is the result of one analysis batch.
type AnalyzeSummary struct {
	Processed         int      `json:"processed"`
	Succeeded         int      `json:"succeeded"`
	Failed            int      `json:"failed"`
	SkippedCooldown   int      `json:"skipped_cooldown"`
	TickersRecomputed []string `json:"tickers_recomputed,omitempty"`
}

// AnalyzerService defines the interface for the sentiment analysis
// pipeline over pending news records.
type AnalyzerService interface {
	AnalyzePending(ctx context.Context, ticker string) (*AnalyzeSummary, error)
}

// NewAnalyzerService creates a new instance of AnalyzerService.
func NewAnalyzerService(
	cfg config.Scheduler,
	analyzer repository.SentimentAnalyzer,
	newsRepo repository.NewsRepository,
	sentimentService SentimentService,
	log *logger.Logger,
) AnalyzerService {
	batchSize := cfg.AnalyzeBatchSize
	if batchSize <= 0 {
		batchSize = defaultAnalyzeBatchSize
	}
	return &analyzerService{
		analyzer:         analyzer,
		newsRepo:         newsRepo,
		sentimentService: sentimentService,
		logger:           log,
		batchSize:        batchSize,
	}
}

type analyzerService struct {
	analyzer         repository.SentimentAnalyzer
	newsRepo         repository.NewsRepository
	sentimentService SentimentService
	logger           *logger.Logger
	batchSize        int
}

// AnalyzePending classifies one batch of pending records, oldest first,
// optionally restricted to a single ticker. A failed classification
// leaves the record pending for the next cycle; a cooldown signal stops
// the batch immediately since further calls would also be throttled.
// Every ticker with at least one new classification gets its aggregate
// recomputed afterwards.
func (s *analyzerService) AnalyzePending(ctx context.Context, ticker string) (*AnalyzeSummary, error) {
	var (
		records []entity.NewsRecord
		err     error
	)
	if ticker != "" {
		normalized, symErr := NormalizeSymbol(ticker)
		if symErr != nil {
			return nil, symErr
		}
		records, err = s.newsRepo.FindPendingByTicker(ctx, normalized, s.batchSize)
	} else {
		records, err = s.newsRepo.FindPending(ctx, s.batchSize)
	}
	if err != nil {
		return nil, err
	}

	summary := &AnalyzeSummary{}
	touched := make(map[string]bool)

	for i, record := range records {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		summary.Processed++
		analysis, err := s.analyzer.AnalyzeSentiment(ctx, record.Ticker, newsText(record))
		if errors.Is(err, repository.ErrServiceCooldown) {
			summary.Processed--
			summary.SkippedCooldown = len(records) - i
			s.logger.Warn("Classifier in cooldown, stopping batch",
				logger.IntField("remaining", summary.SkippedCooldown))
			break
		}
		if err != nil {
			summary.Failed++
			s.logger.Warn("Classification failed, record stays pending",
				logger.StringField("ticker", record.Ticker),
				logger.Field("record_id", record.ID),
				logger.ErrorField(err))
			continue
		}

		updated, err := s.newsRepo.MarkAnalyzed(ctx, record.ID,
			string(analysis.Category), analysis.Justification, analysis.KeyTopics)
		if err != nil {
			summary.Failed++
			s.logger.Error("Failed to persist analysis",
				logger.Field("record_id", record.ID),
				logger.ErrorField(err))
			continue
		}
		if !updated {
			// Another worker got there first; nothing to recompute.
			continue
		}

		summary.Succeeded++
		touched[record.Ticker] = true
	}

	for _, t := range sortedKeys(touched) {
		if _, err := s.sentimentService.Recompute(ctx, t); err != nil {
			s.logger.Error("Failed to recompute ticker sentiment",
				logger.StringField("ticker", t),
				logger.ErrorField(err))
			continue
		}
		summary.TickersRecomputed = append(summary.TickersRecomputed, t)
	}

	s.logger.Info("Analysis batch completed",
		logger.IntField("processed", summary.Processed),
		logger.IntField("succeeded", summary.Succeeded),
		logger.IntField("failed", summary.Failed),
		logger.IntField("skipped_cooldown", summary.SkippedCooldown))
	return summary, nil
}

// newsText builds the text handed to the classifier for one record.
func newsText(record entity.NewsRecord) string {
	return fmt.Sprintf("Title: %s\n\n%s", record.Title, record.Summary)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
