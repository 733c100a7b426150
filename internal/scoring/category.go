package scoring

// Category is one of the five ordinal sentiment labels assigned by the
// classifier to a single news item.
type Category string

const (
	HighlyNegative Category = "Highly Negative"
	Negative       Category = "Negative"
	Neutral        Category = "Neutral"
	Positive       Category = "Positive"
	HighlyPositive Category = "Highly Positive"
)

// categoryScores is the canonical integer scale used for aggregation.
var categoryScores = map[Category]int{
	HighlyNegative: -2,
	Negative:       -1,
	Neutral:        0,
	Positive:       1,
	HighlyPositive: 2,
}

// ParseCategory maps a classifier label to a Category. Unknown labels
// return false so a malformed response never enters aggregation.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryScores[c]
	return c, ok
}

// Score returns the integer aggregation score for the category.
func (c Category) Score() int {
	return categoryScores[c]
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	_, ok := categoryScores[c]
	return ok
}

// LabelForAverage re-derives a label from an average integer score.
func LabelForAverage(avg float64) string {
	switch {
	case avg >= 1.5:
		return string(HighlyPositive)
	case avg >= 0.5:
		return string(Positive)
	case avg >= -0.5:
		return string(Neutral)
	case avg >= -1.5:
		return string(Negative)
	default:
		return string(HighlyNegative)
	}
}

// Trading signals derived from the normalized score.
const (
	SignalStrongBuy  = "STRONG BUY"
	SignalBuy        = "BUY"
	SignalHold       = "HOLD"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG SELL"
)

// SignalFor is the pure threshold function from normalized score in
// [-1, 1] to a discrete trading signal. The signal is never stored
// independently of the score that produced it.
func SignalFor(normalizedScore float64) string {
	switch {
	case normalizedScore >= 0.5:
		return SignalStrongBuy
	case normalizedScore >= 0.2:
		return SignalBuy
	case normalizedScore >= -0.2:
		return SignalHold
	case normalizedScore >= -0.5:
		return SignalSell
	default:
		return SignalStrongSell
	}
}
