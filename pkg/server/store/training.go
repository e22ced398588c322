package store

import (
	"errors"
	"time"
)

// ErrNoTrainingSamples is returned when training is requested with an empty corpus
var ErrNoTrainingSamples = errors.New("no training samples available")

// TrainingSample is a labelled SMS text
type TrainingSample struct {
	ID        int64
	Body      string
	Category  string
	Source    string
	CreatedAt time.Time
}

// TrainingStore abstracts training corpus operations
type TrainingStore interface {
	// AddSample appends a labelled sample to the corpus.
	AddSample(body, category, source string) error

	// ListSamples returns the whole corpus.
	// Returns ErrNoTrainingSamples when the corpus is empty.
	ListSamples() ([]TrainingSample, error)

	// CountSamples returns the corpus size.
	CountSamples() (int64, error)
}
