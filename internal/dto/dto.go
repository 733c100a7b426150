package dto

import (
	"time"

	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/service"
	"golang-sentiment-tracker/pkg/ratelimit"
)

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AddTickerRequest is the DTO for adding a ticker to the watchlist.
type AddTickerRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
}

// TickerResponse represents a watchlist ticker with its sentiment
// aggregate when one exists.
type TickerResponse struct {
	Symbol    string                  `json:"symbol"`
	Name      string                  `json:"name,omitempty"`
	AddedAt   time.Time               `json:"added_at"`
	IsActive  bool                    `json:"is_active"`
	Sentiment *entity.TickerSentiment `json:"sentiment,omitempty"`
}

// NewTickerResponse maps a watchlist entity to its API representation.
func NewTickerResponse(ticker entity.WatchlistTicker) TickerResponse {
	return TickerResponse{
		Symbol:    ticker.Symbol,
		Name:      ticker.Name,
		AddedAt:   ticker.AddedAt,
		IsActive:  ticker.IsActive,
		Sentiment: ticker.Sentiment,
	}
}

// NewsListResponse is the paginated news listing for one ticker.
type NewsListResponse struct {
	Ticker string                `json:"ticker"`
	Counts repository.NewsCounts `json:"counts"`
	Items  []entity.NewsRecord   `json:"items"`
}

// JobTriggerResponse acknowledges a manually triggered background job.
type JobTriggerResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// JobStatusResponse lists the tracked state of every background job.
type JobStatusResponse struct {
	Jobs []service.JobInfo `json:"jobs"`
}

// JobRunsResponse lists recent persisted job runs.
type JobRunsResponse struct {
	Runs []entity.JobRun `json:"runs"`
}

// RateLimitsResponse lists the cooldown state of every external service.
type RateLimitsResponse struct {
	Services []ratelimit.CooldownStatus `json:"services"`
}
