package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agriempower/backend/internal/domain"
	"github.com/agriempower/backend/internal/fertility"
	"github.com/agriempower/backend/internal/synth"
	"github.com/agriempower/backend/pkg/utils"
)

// GeneratorFactory returns a fresh generator for one request
type GeneratorFactory func() *synth.Generator

// AdvisoryConfig tunes the fertility advisory
type AdvisoryConfig struct {
	TrainingSamples int
	Forest          fertility.Options
	// CacheModel keeps the last trained model for predictions instead of retraining each time
	CacheModel bool
}

// AdvisoryService trains the fertility forest on synthetic soil data and serves predictions
type AdvisoryService struct {
	cfg          AdvisoryConfig
	newGenerator GeneratorFactory
	repo         AuditRepository
	metrics      *Metrics
	logger       *zap.Logger

	mu     sync.RWMutex
	cached *fertility.Model

	wgBg sync.WaitGroup // tracks background audit writes for graceful shutdown
}

// NewAdvisoryService creates a new advisory service
func NewAdvisoryService(
	cfg AdvisoryConfig,
	newGenerator GeneratorFactory,
	repo AuditRepository,
	metrics *Metrics,
	logger *zap.Logger,
) *AdvisoryService {
	if cfg.TrainingSamples <= 0 {
		cfg.TrainingSamples = synth.DefaultSoilSamples
	}
	return &AdvisoryService{
		cfg:          cfg,
		newGenerator: newGenerator,
		repo:         repo,
		metrics:      metrics,
		logger:       logger,
	}
}

// WaitBackground blocks until all background audit writes complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *AdvisoryService) WaitBackground() {
	s.wgBg.Wait()
}

// SoilSamples returns a freshly generated labeled batch
func (s *AdvisoryService) SoilSamples(n int) []domain.SoilSample {
	return s.newGenerator().SoilSamples(n)
}

// TrainModel fits a new forest on a freshly generated batch
func (s *AdvisoryService) TrainModel() (*fertility.Model, error) {
	samples := s.newGenerator().SoilSamples(s.cfg.TrainingSamples)

	start := time.Now()
	model, err := fertility.Train(samples, s.cfg.Forest)
	if err != nil {
		s.metrics.TrainingFailures.Inc()
		return nil, fmt.Errorf("advisory: train: %w", err)
	}
	s.metrics.TrainingDuration.Observe(time.Since(start).Seconds())

	return model, nil
}

// RefreshModel retrains and replaces the cached model
func (s *AdvisoryService) RefreshModel() error {
	model, err := s.TrainModel()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = model
	s.mu.Unlock()

	s.logger.Info("fertility model refreshed", zap.Int("training_size", model.TrainingSize()))
	return nil
}

// CachedModel returns the model kept for reuse, or nil
func (s *AdvisoryService) CachedModel() *fertility.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

// Predict classifies one feature vector.
// Without caching a new model is trained for the call and discarded afterwards.
func (s *AdvisoryService) Predict(ctx context.Context, features domain.SoilFeatureVector) (domain.FertilityPrediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.FertilityPrediction{}, fmt.Errorf("advisory: predict: %w", err)
	}

	model, cached := s.modelForRequest()
	if model == nil {
		var err error
		if model, err = s.TrainModel(); err != nil {
			return domain.FertilityPrediction{}, err
		}
		if s.cfg.CacheModel {
			s.mu.Lock()
			if s.cached == nil {
				s.cached = model
			}
			s.mu.Unlock()
		}
	}

	label, err := model.Predict(features)
	if err != nil {
		return domain.FertilityPrediction{}, fmt.Errorf("advisory: predict: %w", err)
	}
	proba, err := model.PredictProba(features)
	if err != nil {
		return domain.FertilityPrediction{}, fmt.Errorf("advisory: predict: %w", err)
	}
	for k, p := range proba {
		proba[k] = utils.RoundTo(p, 4)
	}

	prediction := domain.FertilityPrediction{
		Features:      features,
		Fertility:     label,
		Confidence:    proba[label],
		Probabilities: proba,
		TrainingSize:  model.TrainingSize(),
		Cached:        cached,
	}
	s.metrics.Predictions.WithLabelValues(string(label)).Inc()

	s.logger.Debug("fertility predicted",
		zap.Stringer("features", features),
		zap.String("fertility", string(label)),
		zap.Float64("confidence", prediction.Confidence),
		zap.Bool("cached", cached),
	)

	entry := domain.PredictionLog{
		ID:           uuid.NewString(),
		Features:     features,
		Fertility:    label,
		Confidence:   prediction.Confidence,
		TrainingSize: prediction.TrainingSize,
		Cached:       cached,
		CreatedAt:    time.Now().UTC(),
	}
	s.saveInBackground(func(ctx context.Context) error {
		return s.repo.SavePredictionLog(ctx, entry)
	})

	return prediction, nil
}

// RecentPredictions returns the latest audited predictions
func (s *AdvisoryService) RecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	return s.repo.RecentPredictions(ctx, limit)
}

func (s *AdvisoryService) modelForRequest() (*fertility.Model, bool) {
	if !s.cfg.CacheModel {
		return nil, false
	}
	if m := s.CachedModel(); m != nil {
		return m, true
	}
	return nil, false
}

func (s *AdvisoryService) saveInBackground(save func(ctx context.Context) error) {
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := save(bgCtx); err != nil {
			s.logger.Warn("failed to save prediction log", zap.Error(err))
		}
	}()
}
