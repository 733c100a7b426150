package entity

import (
	"time"

	"github.com/lib/pq"
)

// News record analysis status. A record is created pending and moves to
// analyzed exactly once; there is no transition back.
const (
	NewsStatusPending  = "pending"
	NewsStatusAnalyzed = "analyzed"
)

// NewsRecord is a persisted news item for a watched ticker. The URL is
// the dedup key at the persistence layer, independent of the in-memory
// dedup done by the aggregator.
type NewsRecord struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	Ticker          string   `gorm:"type:varchar(10);index;not null" json:"ticker"`
	Title           string   `gorm:"type:varchar(500);not null" json:"title"`
	Summary         string   `gorm:"type:text;not null" json:"summary"`
	PublishedDate   string   `gorm:"type:varchar(50)" json:"published_date"`
	Source          string   `gorm:"type:varchar(200)" json:"source"`
	SourceType      string   `gorm:"type:varchar(20)" json:"source_type"`
	URL             *string  `gorm:"type:varchar(500);uniqueIndex" json:"url,omitempty"`
	RelevanceScore  *float64 `json:"relevance_score,omitempty"`
	EngagementScore *int     `json:"engagement_score,omitempty"`
	Author          string   `gorm:"type:varchar(200)" json:"author,omitempty"`

	Status     string     `gorm:"type:varchar(20);default:pending;index" json:"status"`
	FetchedAt  time.Time  `gorm:"autoCreateTime;index" json:"fetched_at"`
	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`

	// Populated when the item transitions to analyzed.
	Sentiment     string         `gorm:"type:varchar(30)" json:"sentiment,omitempty"`
	Justification string         `gorm:"type:text" json:"justification,omitempty"`
	KeyTopics     pq.StringArray `gorm:"type:text[]" json:"key_topics,omitempty"`
}

// TableName specifies the table name for the NewsRecord model.
func (NewsRecord) TableName() string {
	return "news_records"
}

// IsAnalyzed reports whether the record completed classification.
func (n *NewsRecord) IsAnalyzed() bool {
	return n.Status == NewsStatusAnalyzed
}
