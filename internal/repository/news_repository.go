package repository

import (
	"context"
	"strings"
	"time"

	"golang-sentiment-tracker/internal/entity"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsCounts holds per-status record counts for a ticker.
type NewsCounts struct {
	Pending  int64 `json:"pending"`
	Analyzed int64 `json:"analyzed"`
	Total    int64 `json:"total"`
}

// NewsRepository defines the interface for news record persistence.
type NewsRepository interface {
	CreateIgnoreConflict(ctx context.Context, record *entity.NewsRecord) (bool, error)
	FindByTicker(ctx context.Context, ticker, status string, limit, offset int) ([]entity.NewsRecord, error)
	CountByStatus(ctx context.Context, ticker string) (NewsCounts, error)
	FindPending(ctx context.Context, limit int) ([]entity.NewsRecord, error)
	FindPendingByTicker(ctx context.Context, ticker string, limit int) ([]entity.NewsRecord, error)
	FindAnalyzedByTicker(ctx context.Context, ticker string) ([]entity.NewsRecord, error)
	MarkAnalyzed(ctx context.Context, id uint, sentiment, justification string, keyTopics []string) (bool, error)
}

// NewNewsRepository creates a new instance of NewsRepository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

type newsRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts the record unless a row with the same URL
// already exists. Returns whether a row was actually written; the URL
// unique index is the dedup key at the persistence layer.
func (r *newsRepository) CreateIgnoreConflict(ctx context.Context, record *entity.NewsRecord) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoNothing: true,
	}).Create(record)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *newsRepository) FindByTicker(ctx context.Context, ticker, status string, limit, offset int) ([]entity.NewsRecord, error) {
	var records []entity.NewsRecord
	query := r.db.WithContext(ctx).Where("ticker = ?", strings.ToUpper(ticker))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("fetched_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, err
}

func (r *newsRepository) CountByStatus(ctx context.Context, ticker string) (NewsCounts, error) {
	var counts NewsCounts
	base := r.db.WithContext(ctx).Model(&entity.NewsRecord{}).Where("ticker = ?", strings.ToUpper(ticker))

	if err := base.Session(&gorm.Session{}).Where("status = ?", entity.NewsStatusPending).Count(&counts.Pending).Error; err != nil {
		return counts, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", entity.NewsStatusAnalyzed).Count(&counts.Analyzed).Error; err != nil {
		return counts, err
	}
	counts.Total = counts.Pending + counts.Analyzed
	return counts, nil
}

// FindPending returns pending records oldest first so nothing starves.
func (r *newsRepository) FindPending(ctx context.Context, limit int) ([]entity.NewsRecord, error) {
	var records []entity.NewsRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.NewsStatusPending).
		Order("fetched_at ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *newsRepository) FindPendingByTicker(ctx context.Context, ticker string, limit int) ([]entity.NewsRecord, error) {
	var records []entity.NewsRecord
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND status = ?", strings.ToUpper(ticker), entity.NewsStatusPending).
		Order("fetched_at ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *newsRepository) FindAnalyzedByTicker(ctx context.Context, ticker string) ([]entity.NewsRecord, error) {
	var records []entity.NewsRecord
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND status = ? AND sentiment <> ''", strings.ToUpper(ticker), entity.NewsStatusAnalyzed).
		Find(&records).Error
	return records, err
}

// MarkAnalyzed transitions a pending record to analyzed. The status
// filter makes the transition single-shot: an already-analyzed record is
// never touched again.
func (r *newsRepository) MarkAnalyzed(ctx context.Context, id uint, sentiment, justification string, keyTopics []string) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.NewsRecord{}).
		Where("id = ? AND status = ?", id, entity.NewsStatusPending).
		Updates(map[string]interface{}{
			"status":        entity.NewsStatusAnalyzed,
			"sentiment":     sentiment,
			"justification": justification,
			"key_topics":    pq.StringArray(keyTopics),
			"analyzed_at":   now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
