package postgres

import (
	"context"
	"sync"

	"github.com/agriempower/backend/internal/domain"
)

// MockRepository implements domain.AuditRepository in memory for demo mode
type MockRepository struct {
	mu          sync.RWMutex
	predictions []domain.PredictionLog
	images      []domain.ImageAnalysisLog
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SavePredictionLog keeps the prediction in memory
func (r *MockRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predictions = append(r.predictions, entry)
	return nil
}

// SaveImageAnalysisLog keeps the classification in memory
func (r *MockRepository) SaveImageAnalysisLog(ctx context.Context, entry domain.ImageAnalysisLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images = append(r.images, entry)
	return nil
}

// RecentPredictions returns up to limit predictions, newest first
func (r *MockRepository) RecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.predictions)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.PredictionLog, 0, n)
	for i := len(r.predictions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.predictions[i])
	}
	return out, nil
}

// ImageAnalyses returns every stored classification in insertion order
func (r *MockRepository) ImageAnalyses() []domain.ImageAnalysisLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.ImageAnalysisLog(nil), r.images...)
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
