package extract

import (
	"strings"
)

// UnknownMerchant is returned when no known merchant appears in the text.
const UnknownMerchant = "Unknown Merchant"

// DefaultMerchants is the built-in list of recognized merchant names,
// matched case-insensitively by containment.
var DefaultMerchants = []string{
	"swiggy", "zomato", "amazon", "flipkart", "netflix", "uber", "ola",
	"pizza hut", "dominos", "mcdonald", "starbucks", "big bazaar", "dmart",
}

// MerchantExtractor matches known merchant names in SMS text.
type MerchantExtractor struct {
	merchants []string
}

// NewMerchantExtractor returns an extractor over the default merchant list
// plus any extra names from configuration.
func NewMerchantExtractor(extra ...string) *MerchantExtractor {
	merchants := make([]string, 0, len(DefaultMerchants)+len(extra))
	merchants = append(merchants, DefaultMerchants...)
	for _, m := range extra {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			merchants = append(merchants, m)
		}
	}
	return &MerchantExtractor{merchants: merchants}
}

// Merchant returns the Title-cased name of the first known merchant found in
// the text, or UnknownMerchant.
func (e *MerchantExtractor) Merchant(smsText string) string {
	lower := strings.ToLower(smsText)
	for _, merchant := range e.merchants {
		if strings.Contains(lower, merchant) {
			return titleCase(merchant)
		}
	}
	return UnknownMerchant
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
