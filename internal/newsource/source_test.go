package newsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTrimsFields(t *testing.T) {
	item := NewsItem{
		Title:   "  Company beats estimates  ",
		Summary: "\tStrong quarter across segments\n",
	}

	require.NoError(t, item.Normalize())
	assert.Equal(t, "Company beats estimates", item.Title)
	assert.Equal(t, "Strong quarter across segments", item.Summary)
}

func TestNormalizeRejectsEmptyTitle(t *testing.T) {
	item := NewsItem{Title: "   ", Summary: "something"}
	assert.Error(t, item.Normalize())
}

func TestNormalizeRejectsEmptySummary(t *testing.T) {
	item := NewsItem{Title: "headline", Summary: ""}
	assert.Error(t, item.Normalize())
}

func TestNormalizeRejectsOverlongTitle(t *testing.T) {
	item := NewsItem{
		Title:   strings.Repeat("a", MaxTitleLength+1),
		Summary: "summary",
	}
	assert.Error(t, item.Normalize())

	item.Title = strings.Repeat("a", MaxTitleLength)
	assert.NoError(t, item.Normalize())
}

func TestNormalizeRelevanceRange(t *testing.T) {
	bad := 1.5
	item := NewsItem{Title: "headline", Summary: "summary", RelevanceScore: &bad}
	assert.Error(t, item.Normalize())

	good := 0.75
	item.RelevanceScore = &good
	assert.NoError(t, item.Normalize())
}
