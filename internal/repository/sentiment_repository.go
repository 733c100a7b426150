package repository

import (
	"context"
	"errors"
	"strings"

	"golang-sentiment-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentimentRepository defines the interface for the per-ticker sentiment
// aggregate rows.
type SentimentRepository interface {
	Get(ctx context.Context, ticker string) (*entity.TickerSentiment, error)
	Upsert(ctx context.Context, sentiment *entity.TickerSentiment) error
}

// NewSentimentRepository creates a new instance of SentimentRepository.
func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

type sentimentRepository struct {
	db *gorm.DB
}

func (r *sentimentRepository) Get(ctx context.Context, ticker string) (*entity.TickerSentiment, error) {
	var sentiment entity.TickerSentiment
	err := r.db.WithContext(ctx).
		Where("ticker = ?", strings.ToUpper(ticker)).
		First(&sentiment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sentiment, nil
}

// Upsert replaces the aggregate row for the ticker. The aggregate is
// always recomputed wholesale, so every column is overwritten.
func (r *sentimentRepository) Upsert(ctx context.Context, sentiment *entity.TickerSentiment) error {
	sentiment.Ticker = strings.ToUpper(sentiment.Ticker)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		UpdateAll: true,
	}).Create(sentiment).Error
}
