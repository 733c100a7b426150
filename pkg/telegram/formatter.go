package telegram

import (
	"fmt"
	"strings"
)

// FormatSignalChange renders the alert sent when a ticker's aggregated
// sentiment flips to a new trading signal.
func FormatSignalChange(ticker, oldSignal, newSignal, label string, normalizedScore float64, totalAnalyzed int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*%s* signal changed\n", ticker))
	if oldSignal != "" {
		b.WriteString(fmt.Sprintf("`%s` → `%s`\n", oldSignal, newSignal))
	} else {
		b.WriteString(fmt.Sprintf("New signal: `%s`\n", newSignal))
	}
	b.WriteString(fmt.Sprintf("Sentiment: %s (%.3f)\n", label, normalizedScore))
	b.WriteString(fmt.Sprintf("Based on %d analyzed items", totalAnalyzed))

	return b.String()
}
