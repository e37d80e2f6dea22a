package domain

import (
	"context"
	"time"
)

// PredictionLog records one fertility prediction for auditing
type PredictionLog struct {
	ID           string            `json:"id"`
	Features     SoilFeatureVector `json:"features"`
	Fertility    FertilityLabel    `json:"fertility"`
	Confidence   float64           `json:"confidence"`
	TrainingSize int               `json:"training_size"`
	Cached       bool              `json:"cached"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ImageAnalysisLog records one crop image classification
type ImageAnalysisLog struct {
	ID         string        `json:"id"`
	Filename   string        `json:"filename"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Brightness float64       `json:"brightness"`
	Condition  CropCondition `json:"condition"`
	CreatedAt  time.Time     `json:"created_at"`
}

// AuditRepository defines the interface for audit-log persistence
type AuditRepository interface {
	// SavePredictionLog persists a fertility prediction
	SavePredictionLog(ctx context.Context, entry PredictionLog) error

	// SaveImageAnalysisLog persists an image classification
	SaveImageAnalysisLog(ctx context.Context, entry ImageAnalysisLog) error

	// RecentPredictions returns up to limit predictions, newest first
	RecentPredictions(ctx context.Context, limit int) ([]PredictionLog, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
