package classifier

import (
	"regexp"
	"strings"
)

// Letters and digits in any script count as word characters, so Hindi or
// other non-ASCII SMS text keeps its tokens.
var punctuationRgx = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Normalize cleans SMS text the same way the model was trained: lowercase,
// punctuation replaced with spaces, whitespace collapsed.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = punctuationRgx.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize returns the normalized tokens of an SMS text.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
