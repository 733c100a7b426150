package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Job tracker states.
const (
	JobStatusIdle      = "idle"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Known job identifiers.
const (
	JobFetchAllNews    = "fetch_all_news"
	JobFetchNewsTicker = "fetch_news_ticker"
	JobAnalyzePending  = "analyze_pending"
)

// JobRun is one persisted execution of a background job.
type JobRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JobID        string         `gorm:"type:varchar(50);index;not null" json:"job_id"`
	Status       string         `gorm:"type:varchar(20);not null" json:"status"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	DurationMs   int64          `json:"duration_ms"`
	Result       datatypes.JSON `json:"result,omitempty"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
}

// TableName specifies the table name for the JobRun model.
func (JobRun) TableName() string {
	return "job_runs"
}
