package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrTooFewSamples is returned when training data doesn't cover every category
var ErrTooFewSamples = errors.New("training requires samples for every category")

const smoothingAlpha = 1.0

// Sample is a labelled training example.
type Sample struct {
	Body     string
	Category string
}

// Prediction is the result of classifying an SMS text.
type Prediction struct {
	Category   string
	Confidence float64
}

// Model bundles a fitted vectorizer and classifier with training metadata.
type Model struct {
	Version     int         `json:"version"`
	TrainedAt   time.Time   `json:"trained_at"`
	SampleCount int         `json:"sample_count"`
	Vectorizer  *Vectorizer `json:"vectorizer"`
	Bayes       *NaiveBayes `json:"naive_bayes"`
}

// Train fits a model on the given samples. Every category must be represented
// by at least one sample, and sample categories must be valid.
func Train(samples []Sample) (*Model, error) {
	classes := Categories()
	classIndex := map[string]int{}
	for i, name := range classes {
		classIndex[name] = i
	}

	docs := make([]string, len(samples))
	labels := make([]int, len(samples))
	counts := make([]int, len(classes))
	for i, s := range samples {
		c, ok := classIndex[s.Category]
		if !ok {
			return nil, fmt.Errorf("sample %d has unknown category %q", i, s.Category)
		}
		docs[i] = s.Body
		labels[i] = c
		counts[c]++
	}
	for c, n := range counts {
		if n == 0 {
			return nil, fmt.Errorf("%w: no samples for %q", ErrTooFewSamples, classes[c])
		}
	}

	vectorizer := FitVectorizer(docs)
	vectors := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = vectorizer.Transform(doc)
	}

	return &Model{
		Version:     1,
		TrainedAt:   time.Now().UTC(),
		SampleCount: len(samples),
		Vectorizer:  vectorizer,
		Bayes:       TrainNaiveBayes(vectors, labels, classes, vectorizer.Size(), smoothingAlpha),
	}, nil
}

// Classify predicts the category of an SMS text.
func (m *Model) Classify(text string) Prediction {
	vec := m.Vectorizer.Transform(text)
	c, confidence := m.Bayes.Predict(vec)
	return Prediction{
		Category:   m.Bayes.Classes[c],
		Confidence: confidence,
	}
}

// Save writes the model to path atomically (temp file, then rename).
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sms_model-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp model file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Load reads a model from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	if m.Vectorizer == nil || m.Bayes == nil || len(m.Bayes.Classes) == 0 {
		return nil, fmt.Errorf("model file %s is incomplete", path)
	}
	return &m, nil
}
