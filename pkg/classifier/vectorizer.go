package classifier

import (
	"math"
	"sort"
)

// Vectorizer maps SMS text to L2-normalized TF-IDF vectors over a fixed
// vocabulary. The idf weights use smoothed document frequencies:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// FitVectorizer builds a vocabulary and idf weights from the given documents.
// The vocabulary is assigned indices in lexicographic term order.
func FitVectorizer(docs []string) *Vectorizer {
	docFreq := map[string]int{}
	for _, doc := range docs {
		seen := map[string]bool{}
		for _, term := range Tokenize(doc) {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Transform converts a text into a sparse TF-IDF vector keyed by vocabulary
// index. Terms outside the vocabulary are dropped. The result is
// L2-normalized; an all-unknown text yields an empty vector.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	counts := map[int]float64{}
	for _, term := range Tokenize(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, tf := range counts {
		w := tf * v.IDF[idx]
		counts[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

// Size returns the vocabulary size.
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}
