package entity

import (
	"time"
)

// TickerSentiment is the per-ticker sentiment aggregate. It is never
// updated incrementally: every analysis batch recomputes it wholesale
// from all analyzed news for the ticker.
type TickerSentiment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Ticker string `gorm:"type:varchar(10);uniqueIndex;not null" json:"ticker"`

	Score             float64  `json:"score"`
	NormalizedScore   float64  `json:"normalized_score"`
	SentimentLabel    string   `gorm:"type:varchar(30)" json:"sentiment_label"`
	Signal            string   `gorm:"type:varchar(20)" json:"signal"`
	Confidence        float64  `json:"confidence"`
	TimeWeightedScore *float64 `json:"time_weighted_score,omitempty"`
	Trend             string   `gorm:"type:varchar(20)" json:"trend,omitempty"`

	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`
	TotalAnalyzed int `json:"total_analyzed"`
	TotalPending  int `json:"total_pending"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the TickerSentiment model.
func (TickerSentiment) TableName() string {
	return "ticker_sentiments"
}
