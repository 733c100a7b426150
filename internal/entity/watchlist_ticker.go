package entity

import (
	"time"
)

// WatchlistTicker represents a stock symbol being followed. Removal is a
// soft deactivation so re-adding a ticker preserves its news history.
type WatchlistTicker struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Symbol   string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"symbol"`
	Name     string    `gorm:"type:varchar(200)" json:"name,omitempty"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	Sentiment *TickerSentiment `gorm:"foreignKey:Ticker;references:Symbol" json:"sentiment,omitempty"`
}

// TableName specifies the table name for the WatchlistTicker model.
func (WatchlistTicker) TableName() string {
	return "watchlist_tickers"
}
