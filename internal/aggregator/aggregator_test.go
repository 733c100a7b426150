package aggregator

import (
	"testing"

	"golang-sentiment-tracker/internal/newsource"
	"golang-sentiment-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAggregator(t *testing.T) *Aggregator {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return New(nil, log)
}

func floatPtr(v float64) *float64 { return &v }

func TestDeduplicateByURL(t *testing.T) {
	agg := testAggregator(t)

	items := []newsource.NewsItem{
		{Title: "Company beats earnings estimates", URL: "https://example.com/a", SourceType: newsource.SourceTypeMarketNews},
		{Title: "A totally different headline about guidance", URL: "https://example.com/a", SourceType: newsource.SourceTypeForum},
	}

	result := agg.Deduplicate(items)
	require.Len(t, result, 1)
	assert.Equal(t, newsource.SourceTypeMarketNews, result[0].SourceType)
}

func TestDeduplicateCaseOnlyTitleDifference(t *testing.T) {
	agg := testAggregator(t)

	items := []newsource.NewsItem{
		{Title: "Apple Announces Record Buyback", URL: "https://a.example.com/1", SourceType: newsource.SourceTypeForum},
		{Title: "APPLE ANNOUNCES RECORD BUYBACK", URL: "https://b.example.com/2", SourceType: newsource.SourceTypeForum},
	}

	result := agg.Deduplicate(items)
	assert.Len(t, result, 1)
}

func TestDeduplicateFuzzyTitles(t *testing.T) {
	agg := testAggregator(t)

	items := []newsource.NewsItem{
		{Title: "Tesla delivers 500,000 vehicles in Q4", URL: "https://a.example.com/1", SourceType: newsource.SourceTypeForum},
		{Title: "Tesla delivers 500,000 vehicles in Q4!", URL: "https://b.example.com/2", SourceType: newsource.SourceTypeMicroblog},
	}

	result := agg.Deduplicate(items)
	assert.Len(t, result, 1)
}

func TestDeduplicateHigherPriorityWinsRegardlessOfOrder(t *testing.T) {
	agg := testAggregator(t)

	forum := newsource.NewsItem{Title: "Chipmaker warns on demand", URL: "https://forum.example.com/1", SourceType: newsource.SourceTypeForum}
	market := newsource.NewsItem{Title: "Chipmaker warns on demand", URL: "https://news.example.com/1", SourceType: newsource.SourceTypeMarketNews}

	for _, items := range [][]newsource.NewsItem{
		{forum, market},
		{market, forum},
	} {
		result := agg.Deduplicate(items)
		require.Len(t, result, 1)
		assert.Equal(t, newsource.SourceTypeMarketNews, result[0].SourceType)
	}
}

func TestDeduplicateRelevanceBreaksTies(t *testing.T) {
	agg := testAggregator(t)

	lowRelevance := newsource.NewsItem{
		Title:          "Retailer expands same day delivery",
		URL:            "https://news.example.com/low",
		SourceType:     newsource.SourceTypeMarketNews,
		RelevanceScore: floatPtr(0.2),
	}
	highRelevance := newsource.NewsItem{
		Title:          "Retailer expands same day delivery",
		URL:            "https://news.example.com/high",
		SourceType:     newsource.SourceTypeMarketNews,
		RelevanceScore: floatPtr(0.9),
	}

	result := agg.Deduplicate([]newsource.NewsItem{lowRelevance, highRelevance})
	require.Len(t, result, 1)
	require.NotNil(t, result[0].RelevanceScore)
	assert.Equal(t, 0.9, *result[0].RelevanceScore)
}

func TestDeduplicateKeepsDissimilarTitles(t *testing.T) {
	agg := testAggregator(t)

	items := []newsource.NewsItem{
		{Title: "Bank raises dividend by 10 percent", URL: "https://a.example.com/1", SourceType: newsource.SourceTypeMarketNews},
		{Title: "Regulator opens probe into trading desk", URL: "https://a.example.com/2", SourceType: newsource.SourceTypeMarketNews},
	}

	result := agg.Deduplicate(items)
	assert.Len(t, result, 2)
}

func TestDeduplicateEmpty(t *testing.T) {
	agg := testAggregator(t)
	assert.Nil(t, agg.Deduplicate(nil))
}

func TestPriority(t *testing.T) {
	market := newsource.NewsItem{SourceType: newsource.SourceTypeMarketNews, RelevanceScore: floatPtr(0.5)}
	forum := newsource.NewsItem{SourceType: newsource.SourceTypeForum}
	microblog := newsource.NewsItem{SourceType: newsource.SourceTypeMicroblog}

	assert.Equal(t, 3.5, Priority(market))
	assert.Equal(t, 2.0, Priority(forum))
	assert.Equal(t, 1.0, Priority(microblog))
	// A forum post can never outrank market news on relevance alone.
	assert.Greater(t, Priority(newsource.NewsItem{SourceType: newsource.SourceTypeMarketNews}),
		Priority(newsource.NewsItem{SourceType: newsource.SourceTypeForum, RelevanceScore: floatPtr(1.0)}))
}

func TestSortByDateDescUnparseableLast(t *testing.T) {
	items := []newsource.NewsItem{
		{Title: "old", PublishedDate: "2024-01-01T08:00:00Z"},
		{Title: "garbage", PublishedDate: "not a date"},
		{Title: "new", PublishedDate: "2024-06-01T08:00:00Z"},
	}

	sortByDateDesc(items)

	assert.Equal(t, "new", items[0].Title)
	assert.Equal(t, "old", items[1].Title)
	assert.Equal(t, "garbage", items[2].Title)
}

func TestSortByDateDescCompactFormat(t *testing.T) {
	items := []newsource.NewsItem{
		{Title: "earlier", PublishedDate: "20240101T0800"},
		{Title: "later", PublishedDate: "20240101T153000"},
	}

	sortByDateDesc(items)

	assert.Equal(t, "later", items[0].Title)
	assert.Equal(t, "earlier", items[1].Title)
}
