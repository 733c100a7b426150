package scoring

import (
	"math"
	"time"

	"golang-sentiment-tracker/internal/newsource"
)

// Trend tags on a ticker score.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// Trend detection floors: at least four samples overall and two per
// partition, with a ±0.3 band around "stable".
const (
	trendMinSamples          = 4
	trendMinPartitionSamples = 2
	trendBand                = 0.3
)

// Analysis is the classifier's verdict for one news item.
type Analysis struct {
	Category      Category `json:"category"`
	Justification string   `json:"justification"`
	KeyTopics     []string `json:"key_topics,omitempty"`
}

// Result wraps a news item with its classification outcome. A result is
// successful when an analysis is present and no error was recorded.
type Result struct {
	News       newsource.NewsItem
	Analysis   *Analysis
	Ticker     string
	AnalyzedAt time.Time
	Err        string
}

// IsSuccessful reports whether the item was classified.
func (r Result) IsSuccessful() bool {
	return r.Analysis != nil && r.Err == ""
}

// Score is the aggregated sentiment for one ticker. It is derived, not
// a source of truth: callers recompute it from analysis results.
type Score struct {
	Ticker            string   `json:"ticker"`
	Score             float64  `json:"score"`
	NormalizedScore   float64  `json:"normalized_score"`
	SentimentLabel    string   `json:"sentiment_label"`
	Signal            string   `json:"signal"`
	Confidence        float64  `json:"confidence"`
	TotalAnalyzed     int      `json:"total_analyzed"`
	PositiveCount     int      `json:"positive_count"`
	NegativeCount     int      `json:"negative_count"`
	NeutralCount      int      `json:"neutral_count"`
	TimeWeightedScore *float64 `json:"time_weighted_score,omitempty"`
	Trend             string   `json:"trend,omitempty"`
}

// Engine computes ticker sentiment scores with time decay and trend
// detection. The zero values of the tunables fall back to a 7-day decay
// half-life and a 3-day trend window.
type Engine struct {
	decayHalfLifeDays float64
	trendWindowDays   float64
	now               func() time.Time
}

// NewEngine creates an engine with the given decay half-life and trend
// window in days; non-positive values use the defaults.
func NewEngine(decayHalfLifeDays, trendWindowDays float64) *Engine {
	if decayHalfLifeDays <= 0 {
		decayHalfLifeDays = 7
	}
	if trendWindowDays <= 0 {
		trendWindowDays = 3
	}
	return &Engine{
		decayHalfLifeDays: decayHalfLifeDays,
		trendWindowDays:   trendWindowDays,
		now:               time.Now,
	}
}

// Calculate aggregates the successful results into a base score, or nil
// when there is nothing to aggregate.
func (e *Engine) Calculate(results []Result) *Score {
	valid := successful(results)
	if len(valid) == 0 {
		return nil
	}

	score := &Score{Ticker: valid[0].Ticker}

	var sum int
	scores := make([]int, 0, len(valid))
	for _, r := range valid {
		s := r.Analysis.Category.Score()
		scores = append(scores, s)
		sum += s

		switch {
		case s > 0:
			score.PositiveCount++
		case s < 0:
			score.NegativeCount++
		default:
			score.NeutralCount++
		}
	}

	avg := float64(sum) / float64(len(scores))
	score.Score = avg
	score.NormalizedScore = avg / 2.0
	score.SentimentLabel = LabelForAverage(avg)
	score.Signal = SignalFor(score.NormalizedScore)
	score.TotalAnalyzed = len(valid)
	score.Confidence = confidence(scores)

	return score
}

// CalculateTimeWeighted is Calculate plus an exponentially decayed
// score: weight = 0.5^(age_days / half_life). Stale analyses fade but
// are never discarded outright.
func (e *Engine) CalculateTimeWeighted(results []Result) *Score {
	score := e.Calculate(results)
	if score == nil {
		return nil
	}

	now := e.now()
	var weightedSum, weightTotal float64
	for _, r := range successful(results) {
		ageDays := now.Sub(r.AnalyzedAt).Hours() / 24
		weight := math.Pow(0.5, ageDays/e.decayHalfLifeDays)
		weightedSum += float64(r.Analysis.Category.Score()) * weight
		weightTotal += weight
	}

	if weightTotal > 0 {
		weighted := weightedSum / weightTotal / 2.0
		score.TimeWeightedScore = &weighted
	}
	return score
}

// CalculateWithTrend is CalculateTimeWeighted plus a trend tag comparing
// the mean score of recent results against older ones.
func (e *Engine) CalculateWithTrend(results []Result) *Score {
	score := e.CalculateTimeWeighted(results)
	if score == nil {
		return nil
	}
	if score.TotalAnalyzed < trendMinSamples {
		score.Trend = TrendInsufficientData
		return score
	}

	cutoff := e.now().Add(-time.Duration(e.trendWindowDays * 24 * float64(time.Hour)))

	var recent, older []int
	for _, r := range successful(results) {
		s := r.Analysis.Category.Score()
		if !r.AnalyzedAt.Before(cutoff) {
			recent = append(recent, s)
		} else {
			older = append(older, s)
		}
	}

	if len(recent) < trendMinPartitionSamples || len(older) < trendMinPartitionSamples {
		score.Trend = TrendInsufficientData
		return score
	}

	diff := mean(recent) - mean(older)
	switch {
	case diff > trendBand:
		score.Trend = TrendImproving
	case diff < -trendBand:
		score.Trend = TrendDeclining
	default:
		score.Trend = TrendStable
	}
	return score
}

func successful(results []Result) []Result {
	valid := make([]Result, 0, len(results))
	for _, r := range results {
		if r.IsSuccessful() {
			valid = append(valid, r)
		}
	}
	return valid
}

// confidence measures agreement between component scores: 1 minus the
// normalized sample standard deviation, floored at zero. A single
// sample has no dispersion to measure, so confidence is fixed at 0.5.
func confidence(scores []int) float64 {
	if len(scores) < 2 {
		return 0.5
	}

	m := mean(scores)
	var sumSq float64
	for _, s := range scores {
		d := float64(s) - m
		sumSq += d * d
	}
	stdev := math.Sqrt(sumSq / float64(len(scores)-1))

	c := 1 - stdev/2
	if c < 0 {
		return 0
	}
	return c
}

func mean(scores []int) float64 {
	var sum int
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
