package model

import "time"

// Training sample sources
const (
	SampleSourceSeed   = "seed"
	SampleSourceAPI    = "api"
	SampleSourceImport = "import"
)

// TrainingSample is a labelled SMS text used to train the model.
type TrainingSample struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Body      string    `gorm:"column:body;not null"`
	Category  string    `gorm:"column:category;not null"`
	Source    string    `gorm:"column:source;not null;default:api"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TrainingSample) TableName() string {
	return "training_samples"
}
