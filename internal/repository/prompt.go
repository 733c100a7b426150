package repository

import "fmt"

// BuildSentimentPrompt builds the classification prompt for one news
// item. The model must answer with a strict JSON object so the response
// can be unmarshalled directly.
func BuildSentimentPrompt(ticker, newsText string) string {
	return fmt.Sprintf(`Act as a quantitative market analyst specialized in short-term trading.
Evaluate the news text provided about the stock %s to classify its sentiment and potential short-term price impact.

Format the response strictly as a JSON object with three fields:
1. "SENTIMENT" (Use only one of these categories: 'Highly Negative', 'Negative', 'Neutral', 'Positive', 'Highly Positive').
2. "JUSTIFICATION" (A concise 1-2 sentence summary explaining the main reason for the impact).
3. "KEY_TOPICS" (An array of at most 3 short topic phrases mentioned in the text, e.g. "earnings", "product recall").

TEXT TO ANALYZE:
---
%s
---
`, ticker, newsText)
}
