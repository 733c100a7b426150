package newsource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Source type tags carried on every news item. The aggregator uses them
// for priority-based conflict resolution.
const (
	SourceTypeMarketNews = "market_news"
	SourceTypeForum      = "forum"
	SourceTypeMicroblog  = "microblog"
)

// MaxTitleLength is the longest accepted title after trimming.
const MaxTitleLength = 500

// ErrServiceCooldown is returned by an adapter whose provider is in a
// rate-limit cooldown; the caller skips it rather than retrying.
var ErrServiceCooldown = errors.New("service is in cooldown")

// NewsItem is a normalized news item produced by a source adapter. It is
// treated as immutable after Normalize. Identity for dedup purposes is
// the URL, or the normalized title when the URL is absent.
type NewsItem struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	PublishedDate   string   `json:"published_date"`
	Source          string   `json:"source,omitempty"`
	SourceType      string   `json:"source_type,omitempty"`
	URL             string   `json:"url,omitempty"`
	RelevanceScore  *float64 `json:"relevance_score,omitempty"`
	EngagementScore *int     `json:"engagement_score,omitempty"`
	Author          string   `json:"author,omitempty"`
	AuthorFollowers *int     `json:"author_followers,omitempty"`
}

// Normalize trims the free-text fields and validates the item. Invalid
// items are dropped by the caller; the batch continues.
func (n *NewsItem) Normalize() error {
	n.Title = strings.TrimSpace(n.Title)
	n.Summary = strings.TrimSpace(n.Summary)

	if n.Title == "" {
		return errors.New("title must not be empty")
	}
	if utf8.RuneCountInString(n.Title) > MaxTitleLength {
		return fmt.Errorf("title exceeds %d characters", MaxTitleLength)
	}
	if n.Summary == "" {
		return errors.New("summary must not be empty")
	}
	if n.RelevanceScore != nil && (*n.RelevanceScore < 0 || *n.RelevanceScore > 1) {
		return fmt.Errorf("relevance score %f out of range [0,1]", *n.RelevanceScore)
	}
	return nil
}

// Source is the capability interface implemented by every news origin.
// Fetch must not fail for "no results"; it returns an error only on an
// unrecoverable provider error, which the aggregator logs and skips.
type Source interface {
	Name() string
	IsAvailable() bool
	Fetch(ctx context.Context, ticker string, from, to time.Time) ([]NewsItem, error)
}
