// Package extract pulls transaction details (amount, merchant) out of raw
// SMS text.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount patterns are tried in order; the first match wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:rs\.?|inr|₹)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:rs\.?|inr|₹)`),
	regexp.MustCompile(`amount\s*(?:rs\.?|inr|₹)?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`debited\s*(?:rs\.?|inr|₹)?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`spent\s*(?:rs\.?|inr|₹)?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
}

// Amount extracts the monetary amount from an SMS text. Returns 0 when no
// amount is found.
func Amount(smsText string) float64 {
	lower := strings.ToLower(smsText)
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return amount
	}
	return 0
}
