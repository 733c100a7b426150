package repository

import (
	"context"
	"errors"
	"strings"

	"golang-sentiment-tracker/internal/entity"

	"gorm.io/gorm"
)

// ErrTickerNotFound is returned when a symbol is not in the watchlist.
var ErrTickerNotFound = errors.New("ticker not found in watchlist")

// WatchlistRepository defines the interface for watchlist persistence.
type WatchlistRepository interface {
	GetAll(ctx context.Context, includeInactive bool) ([]entity.WatchlistTicker, error)
	GetBySymbol(ctx context.Context, symbol string) (*entity.WatchlistTicker, error)
	Add(ctx context.Context, symbol, name string) (*entity.WatchlistTicker, error)
	Deactivate(ctx context.Context, symbol string) error
}

// NewWatchlistRepository creates a new instance of WatchlistRepository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

func (r *watchlistRepository) GetAll(ctx context.Context, includeInactive bool) ([]entity.WatchlistTicker, error) {
	var tickers []entity.WatchlistTicker
	query := r.db.WithContext(ctx).Preload("Sentiment")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("added_at DESC").Find(&tickers).Error
	return tickers, err
}

func (r *watchlistRepository) GetBySymbol(ctx context.Context, symbol string) (*entity.WatchlistTicker, error) {
	var ticker entity.WatchlistTicker
	err := r.db.WithContext(ctx).Preload("Sentiment").
		Where("symbol = ?", strings.ToUpper(symbol)).
		First(&ticker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTickerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticker, nil
}

// Add inserts the symbol, or reactivates it when it was previously
// deactivated. Re-adding preserves the ticker's news history.
func (r *watchlistRepository) Add(ctx context.Context, symbol, name string) (*entity.WatchlistTicker, error) {
	symbol = strings.ToUpper(symbol)

	var ticker entity.WatchlistTicker
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("symbol = ?", symbol).First(&ticker).Error
		if err == nil {
			updates := map[string]interface{}{"is_active": true}
			if name != "" {
				updates["name"] = name
			}
			if err := tx.Model(&ticker).Updates(updates).Error; err != nil {
				return err
			}
			ticker.IsActive = true
			if name != "" {
				ticker.Name = name
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ticker = entity.WatchlistTicker{
			Symbol:   symbol,
			Name:     name,
			IsActive: true,
		}
		return tx.Create(&ticker).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticker, nil
}

func (r *watchlistRepository) Deactivate(ctx context.Context, symbol string) error {
	result := r.db.WithContext(ctx).Model(&entity.WatchlistTicker{}).
		Where("symbol = ?", strings.ToUpper(symbol)).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTickerNotFound
	}
	return nil
}
