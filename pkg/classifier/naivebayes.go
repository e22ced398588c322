package classifier

import (
	"math"
)

// NaiveBayes is a multinomial naive Bayes classifier over TF-IDF features.
type NaiveBayes struct {
	Classes        []string    `json:"classes"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// TrainNaiveBayes fits a classifier from sparse feature vectors and class
// indices with Laplace smoothing. alpha must be positive; 1 matches the
// training pipeline the model file format was designed around.
func TrainNaiveBayes(vectors []map[int]float64, labels []int, classes []string, features int, alpha float64) *NaiveBayes {
	nb := &NaiveBayes{
		Classes:        classes,
		ClassLogPrior:  make([]float64, len(classes)),
		FeatureLogProb: make([][]float64, len(classes)),
	}

	classCounts := make([]float64, len(classes))
	featureSums := make([][]float64, len(classes))
	for c := range classes {
		featureSums[c] = make([]float64, features)
	}

	for i, vec := range vectors {
		c := labels[i]
		classCounts[c]++
		for idx, w := range vec {
			featureSums[c][idx] += w
		}
	}

	total := float64(len(vectors))
	for c := range classes {
		nb.ClassLogPrior[c] = math.Log(classCounts[c] / total)

		var sum float64
		for _, w := range featureSums[c] {
			sum += w
		}
		denom := math.Log(sum + alpha*float64(features))

		nb.FeatureLogProb[c] = make([]float64, features)
		for i, w := range featureSums[c] {
			nb.FeatureLogProb[c][i] = math.Log(w+alpha) - denom
		}
	}
	return nb
}

// Predict returns the most likely class index and its normalized probability.
func (nb *NaiveBayes) Predict(vec map[int]float64) (int, float64) {
	probs := nb.Probabilities(vec)

	best := 0
	for c := range probs {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best, probs[best]
}

// Probabilities returns the normalized per-class likelihoods for a vector.
// The joint log likelihoods are normalized in log space to avoid underflow.
func (nb *NaiveBayes) Probabilities(vec map[int]float64) []float64 {
	joint := make([]float64, len(nb.Classes))
	for c := range nb.Classes {
		jl := nb.ClassLogPrior[c]
		for idx, w := range vec {
			jl += w * nb.FeatureLogProb[c][idx]
		}
		joint[c] = jl
	}

	max := joint[0]
	for _, jl := range joint[1:] {
		if jl > max {
			max = jl
		}
	}

	var sum float64
	probs := make([]float64, len(joint))
	for c, jl := range joint {
		probs[c] = math.Exp(jl - max)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs
}
