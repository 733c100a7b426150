package aggregator

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang-sentiment-tracker/internal/newsource"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/utils"

	"github.com/agext/levenshtein"
)

// DefaultSimilarityThreshold is the title similarity ratio at or above
// which two items are considered the same story.
const DefaultSimilarityThreshold = 0.85

// sourceTypePriorities ranks source types for conflict resolution when
// two sources report the same story. Authoritative market news wins over
// forum posts, which win over microblog chatter.
var sourceTypePriorities = map[string]float64{
	newsource.SourceTypeMarketNews: 3,
	newsource.SourceTypeForum:      2,
	newsource.SourceTypeMicroblog:  1,
}

// Aggregator fans out a fetch across all available source adapters and
// merges the results: cross-source dedup by URL and fuzzy title match,
// priority-based conflict resolution, newest first.
type Aggregator struct {
	sources             []newsource.Source
	similarityThreshold float64
	logger              *logger.Logger
}

// New creates an aggregator over the given adapters.
func New(sources []newsource.Source, log *logger.Logger) *Aggregator {
	available := make([]newsource.Source, 0, len(sources))
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		if s.IsAvailable() {
			available = append(available, s)
			names = append(names, s.Name())
		}
	}
	log.Info("News aggregator initialized", logger.Field("sources", names))

	return &Aggregator{
		sources:             available,
		similarityThreshold: DefaultSimilarityThreshold,
		logger:              log,
	}
}

// AvailableSources returns the names of the usable adapters.
func (a *Aggregator) AvailableSources() []string {
	names := make([]string, 0, len(a.sources))
	for _, s := range a.sources {
		names = append(names, s.Name())
	}
	return names
}

// FetchAll fetches news for the ticker in [from, to] across every
// available adapter, optionally restricted to the named sources. An
// adapter failure never aborts the whole fetch; healthy adapters still
// contribute their results.
func (a *Aggregator) FetchAll(ctx context.Context, ticker string, from, to time.Time, sourceFilter []string) []newsource.NewsItem {
	sources := a.sources
	if len(sourceFilter) > 0 {
		filtered := make([]newsource.Source, 0, len(sources))
		for _, s := range sources {
			if utils.ContainsString(sourceFilter, s.Name()) {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == 0 {
			a.logger.Warn("No sources match filter, using all available",
				logger.Field("filter", sourceFilter))
		} else {
			sources = filtered
		}
	}

	var all []newsource.NewsItem
	for _, source := range sources {
		items, err := source.Fetch(ctx, ticker, from, to)
		if err != nil {
			if errors.Is(err, newsource.ErrServiceCooldown) {
				a.logger.Warn("Source in cooldown, skipping",
					logger.StringField("source", source.Name()))
			} else {
				a.logger.Warn("Source fetch failed",
					logger.StringField("source", source.Name()),
					logger.ErrorField(err))
			}
			continue
		}
		all = append(all, items...)
	}

	deduplicated := a.Deduplicate(all)
	sortByDateDesc(deduplicated)

	a.logger.Info("Aggregated news",
		logger.StringField("ticker", ticker),
		logger.IntField("raw_count", len(all)),
		logger.IntField("final_count", len(deduplicated)),
	)
	return deduplicated
}

// Deduplicate removes duplicates by exact URL and by fuzzy title match.
// On a title collision the higher-priority item is kept regardless of
// arrival order.
func (a *Aggregator) Deduplicate(items []newsource.NewsItem) []newsource.NewsItem {
	if len(items) == 0 {
		return nil
	}

	var unique []newsource.NewsItem
	seenURLs := make(map[string]bool)

candidates:
	for _, item := range items {
		if item.URL != "" && seenURLs[item.URL] {
			continue
		}

		for i, existing := range unique {
			if !a.titlesSimilar(item.Title, existing.Title) {
				continue
			}
			if Priority(item) > Priority(existing) {
				if existing.URL != "" {
					delete(seenURLs, existing.URL)
				}
				unique[i] = item
				if item.URL != "" {
					seenURLs[item.URL] = true
				}
			}
			continue candidates
		}

		unique = append(unique, item)
		if item.URL != "" {
			seenURLs[item.URL] = true
		}
	}

	return unique
}

// Priority scores an item for conflict resolution: base priority by
// source type plus the relevance score when present.
func Priority(item newsource.NewsItem) float64 {
	priority := sourceTypePriorities[item.SourceType]
	if item.RelevanceScore != nil {
		priority += *item.RelevanceScore
	}
	return priority
}

func (a *Aggregator) titlesSimilar(title1, title2 string) bool {
	t1 := strings.ToLower(strings.TrimSpace(title1))
	t2 := strings.ToLower(strings.TrimSpace(title2))

	if t1 == t2 {
		return true
	}
	return levenshtein.Similarity(t1, t2, levenshtein.NewParams()) >= a.similarityThreshold
}

// sortByDateDesc orders items newest first. Unparseable dates map to the
// zero time and therefore sort last; parsing never panics.
func sortByDateDesc(items []newsource.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := utils.ParseNewsDate(items[i].PublishedDate)
		tj, _ := utils.ParseNewsDate(items[j].PublishedDate)
		return ti.After(tj)
	})
}
