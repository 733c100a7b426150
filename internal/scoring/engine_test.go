package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultAt(category Category, analyzedAt time.Time) Result {
	return Result{
		Ticker:     "TEST",
		Analysis:   &Analysis{Category: category, Justification: "test"},
		AnalyzedAt: analyzedAt,
	}
}

func results(categories ...Category) []Result {
	now := time.Now()
	out := make([]Result, 0, len(categories))
	for _, c := range categories {
		out = append(out, resultAt(c, now))
	}
	return out
}

func fixedEngine(now time.Time) *Engine {
	e := NewEngine(7, 3)
	e.now = func() time.Time { return now }
	return e
}

func TestCalculateWorkedExample(t *testing.T) {
	e := NewEngine(0, 0)

	// Five items: 2, 1, 1, 0, -1 averages to 0.6.
	score := e.Calculate(results(HighlyPositive, Positive, Positive, Neutral, Negative))
	require.NotNil(t, score)

	assert.InDelta(t, 0.6, score.Score, 1e-9)
	assert.InDelta(t, 0.3, score.NormalizedScore, 1e-9)
	assert.Equal(t, string(Positive), score.SentimentLabel)
	assert.Equal(t, SignalBuy, score.Signal)
	assert.Equal(t, 5, score.TotalAnalyzed)
	assert.Equal(t, 3, score.PositiveCount)
	assert.Equal(t, 1, score.NegativeCount)
	assert.Equal(t, 1, score.NeutralCount)
}

func TestCalculateNoResults(t *testing.T) {
	e := NewEngine(0, 0)

	assert.Nil(t, e.Calculate(nil))
	assert.Nil(t, e.Calculate([]Result{{Ticker: "TEST", Err: "provider failed"}}))
}

func TestCalculateSkipsFailedResults(t *testing.T) {
	e := NewEngine(0, 0)

	rs := results(HighlyPositive)
	rs = append(rs, Result{Ticker: "TEST", Err: "timeout"})

	score := e.Calculate(rs)
	require.NotNil(t, score)
	assert.Equal(t, 1, score.TotalAnalyzed)
	assert.InDelta(t, 2.0, score.Score, 1e-9)
}

func TestConfidence(t *testing.T) {
	e := NewEngine(0, 0)

	single := e.Calculate(results(Positive))
	require.NotNil(t, single)
	assert.InDelta(t, 0.5, single.Confidence, 1e-9)

	identical := e.Calculate(results(Positive, Positive))
	require.NotNil(t, identical)
	assert.InDelta(t, 1.0, identical.Confidence, 1e-9)

	// Maximal disagreement floors at zero.
	split := e.Calculate(results(HighlyPositive, HighlyNegative, HighlyPositive, HighlyNegative))
	require.NotNil(t, split)
	assert.InDelta(t, 0.0, split.Confidence, 1e-9)
}

func TestLabelThresholds(t *testing.T) {
	cases := []struct {
		avg   float64
		label string
	}{
		{1.5, string(HighlyPositive)},
		{1.49, string(Positive)},
		{0.5, string(Positive)},
		{0.49, string(Neutral)},
		{-0.5, string(Neutral)},
		{-0.51, string(Negative)},
		{-1.5, string(Negative)},
		{-1.51, string(HighlyNegative)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, LabelForAverage(tc.avg), "avg %v", tc.avg)
	}
}

func TestSignalThresholds(t *testing.T) {
	cases := []struct {
		normalized float64
		signal     string
	}{
		{0.5, SignalStrongBuy},
		{0.49, SignalBuy},
		{0.2, SignalBuy},
		{0.19, SignalHold},
		{-0.2, SignalHold},
		{-0.21, SignalSell},
		{-0.5, SignalSell},
		{-0.51, SignalStrongSell},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.signal, SignalFor(tc.normalized), "normalized %v", tc.normalized)
	}
}

// A provider scoring on a half-integer scale in [-1, 1] produces the
// same signals as the integer scale once both are normalized, so the
// choice of scale is not observable through the API.
func TestHalfIntegerScaleEquivalence(t *testing.T) {
	halfScale := map[Category]float64{
		HighlyNegative: -1,
		Negative:       -0.5,
		Neutral:        0,
		Positive:       0.5,
		HighlyPositive: 1,
	}

	batches := [][]Category{
		{HighlyPositive, Positive, Positive, Neutral, Negative},
		{Negative, Negative, HighlyNegative},
		{Neutral, Neutral, Positive},
		{HighlyPositive, HighlyPositive},
	}

	e := NewEngine(0, 0)
	for _, categories := range batches {
		score := e.Calculate(results(categories...))
		require.NotNil(t, score)

		var sum float64
		for _, c := range categories {
			sum += halfScale[c]
		}
		halfNormalized := sum / float64(len(categories))

		assert.InDelta(t, halfNormalized, score.NormalizedScore, 1e-9)
		assert.Equal(t, SignalFor(halfNormalized), score.Signal)
	}
}

func TestTimeWeightedScoreDecay(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	// A fresh positive and a 7-day-old negative: the old item carries
	// half the weight, so the weighted score leans positive.
	rs := []Result{
		resultAt(HighlyPositive, now),
		resultAt(HighlyNegative, now.Add(-7*24*time.Hour)),
	}

	score := e.CalculateTimeWeighted(rs)
	require.NotNil(t, score)
	require.NotNil(t, score.TimeWeightedScore)

	// weights 1 and 0.5: (2*1 + (-2)*0.5) / 1.5 / 2 = 1/3
	assert.InDelta(t, 1.0/3.0, *score.TimeWeightedScore, 1e-9)
	// The plain average is unaffected by age.
	assert.InDelta(t, 0.0, score.Score, 1e-9)
}

func TestTrendRequiresMinimumSamples(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	score := e.CalculateWithTrend([]Result{
		resultAt(Positive, now),
		resultAt(Positive, now.Add(-5*24*time.Hour)),
		resultAt(Negative, now.Add(-5*24*time.Hour)),
	})
	require.NotNil(t, score)
	assert.Equal(t, TrendInsufficientData, score.Trend)
}

func TestTrendBelowFloorMixedScores(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	// Three samples stay below the four-sample floor no matter how the
	// scores split across the window.
	score := e.CalculateWithTrend([]Result{
		resultAt(HighlyPositive, now),
		resultAt(HighlyNegative, now.Add(-5*24*time.Hour)),
		resultAt(Neutral, now.Add(-6*24*time.Hour)),
	})
	require.NotNil(t, score)
	assert.Equal(t, TrendInsufficientData, score.Trend)
}

func TestTrendInsufficientPartition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	// Four samples but only one of them is older than the window.
	score := e.CalculateWithTrend([]Result{
		resultAt(Positive, now),
		resultAt(Positive, now.Add(-time.Hour)),
		resultAt(Neutral, now.Add(-2*time.Hour)),
		resultAt(Negative, now.Add(-5*24*time.Hour)),
	})
	require.NotNil(t, score)
	assert.Equal(t, TrendInsufficientData, score.Trend)
}

func TestTrendImproving(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	score := e.CalculateWithTrend([]Result{
		resultAt(HighlyPositive, now),
		resultAt(Positive, now.Add(-time.Hour)),
		resultAt(Negative, now.Add(-5*24*time.Hour)),
		resultAt(Negative, now.Add(-6*24*time.Hour)),
	})
	require.NotNil(t, score)
	assert.Equal(t, TrendImproving, score.Trend)
}

func TestTrendDeclining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	score := e.CalculateWithTrend([]Result{
		resultAt(Negative, now),
		resultAt(HighlyNegative, now.Add(-time.Hour)),
		resultAt(Positive, now.Add(-5*24*time.Hour)),
		resultAt(Positive, now.Add(-6*24*time.Hour)),
	})
	require.NotNil(t, score)
	assert.Equal(t, TrendDeclining, score.Trend)
}

func TestTrendStable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	score := e.CalculateWithTrend([]Result{
		resultAt(Positive, now),
		resultAt(Positive, now.Add(-time.Hour)),
		resultAt(Positive, now.Add(-5*24*time.Hour)),
		resultAt(Positive, now.Add(-6*24*time.Hour)),
	})
	require.NotNil(t, score)
	assert.Equal(t, TrendStable, score.Trend)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Highly Positive")
	assert.True(t, ok)
	assert.Equal(t, HighlyPositive, c)
	assert.Equal(t, 2, c.Score())

	_, ok = ParseCategory("bullish")
	assert.False(t, ok)
}
