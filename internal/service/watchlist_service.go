package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/pkg/logger"
)

// ErrInvalidSymbol is returned when a ticker symbol fails validation.
var ErrInvalidSymbol = errors.New("invalid ticker symbol")

var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// WatchlistService defines the interface for watchlist management.
type WatchlistService interface {
	List(ctx context.Context, includeInactive bool) ([]entity.WatchlistTicker, error)
	Get(ctx context.Context, symbol string) (*entity.WatchlistTicker, error)
	Add(ctx context.Context, symbol, name string) (*entity.WatchlistTicker, error)
	Remove(ctx context.Context, symbol string) error
}

// NewWatchlistService creates a new instance of WatchlistService.
func NewWatchlistService(repo repository.WatchlistRepository, log *logger.Logger) WatchlistService {
	return &watchlistService{
		repo:   repo,
		logger: log,
	}
}

type watchlistService struct {
	repo   repository.WatchlistRepository
	logger *logger.Logger
}

func (s *watchlistService) List(ctx context.Context, includeInactive bool) ([]entity.WatchlistTicker, error) {
	return s.repo.GetAll(ctx, includeInactive)
}

func (s *watchlistService) Get(ctx context.Context, symbol string) (*entity.WatchlistTicker, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBySymbol(ctx, normalized)
}

func (s *watchlistService) Add(ctx context.Context, symbol, name string) (*entity.WatchlistTicker, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	ticker, err := s.repo.Add(ctx, normalized, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	s.logger.Info("Ticker added to watchlist", logger.StringField("symbol", ticker.Symbol))
	return ticker, nil
}

func (s *watchlistService) Remove(ctx context.Context, symbol string) error {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, normalized); err != nil {
		return err
	}
	s.logger.Info("Ticker removed from watchlist", logger.StringField("symbol", normalized))
	return nil
}

// NormalizeSymbol uppercases and validates a ticker symbol. Symbols are
// one to ten characters, starting with a letter.
func NormalizeSymbol(symbol string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(normalized) {
		return "", ErrInvalidSymbol
	}
	return normalized, nil
}
