package gorm

import (
	"gorm.io/gorm"

	"smscat/pkg/model"
	"smscat/pkg/server/store"
)

// Ensure TrainingStore implements store.TrainingStore
var _ store.TrainingStore = (*TrainingStore)(nil)

// TrainingStore implements store.TrainingStore using GORM
type TrainingStore struct {
	db *gorm.DB
}

// NewTrainingStore creates a new TrainingStore
func NewTrainingStore(db *gorm.DB) *TrainingStore {
	return &TrainingStore{db: db}
}

// AddSample appends a labelled sample to the corpus.
func (s *TrainingStore) AddSample(body, category, source string) error {
	return s.db.Create(&model.TrainingSample{
		Body:     body,
		Category: category,
		Source:   source,
	}).Error
}

// ListSamples returns the whole corpus.
func (s *TrainingStore) ListSamples() ([]store.TrainingSample, error) {
	var records []model.TrainingSample
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, store.ErrNoTrainingSamples
	}

	samples := make([]store.TrainingSample, len(records))
	for i, r := range records {
		samples[i] = store.TrainingSample{
			ID:        r.ID,
			Body:      r.Body,
			Category:  r.Category,
			Source:    r.Source,
			CreatedAt: r.CreatedAt,
		}
	}
	return samples, nil
}

// CountSamples returns the corpus size.
func (s *TrainingStore) CountSamples() (int64, error) {
	var count int64
	err := s.db.Model(&model.TrainingSample{}).Count(&count).Error
	return count, err
}
