package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agriempower/backend/internal/domain"
	"github.com/agriempower/backend/internal/synth"
	"github.com/agriempower/backend/internal/vision"
)

// MonitoringService serves crop trend data and crop image analysis
type MonitoringService struct {
	days         int
	maxPixels    int
	newGenerator GeneratorFactory
	repo         AuditRepository
	metrics      *Metrics
	logger       *zap.Logger

	wgBg sync.WaitGroup
}

// NewMonitoringService creates a new monitoring service.
// maxPixels caps uploaded image dimensions; <= 0 uses vision.DefaultMaxPixels.
func NewMonitoringService(days, maxPixels int, newGenerator GeneratorFactory, repo AuditRepository, metrics *Metrics, logger *zap.Logger) *MonitoringService {
	if days <= 0 {
		days = synth.DefaultCropDays
	}
	if maxPixels <= 0 {
		maxPixels = vision.DefaultMaxPixels
	}
	return &MonitoringService{
		days:         days,
		maxPixels:    maxPixels,
		newGenerator: newGenerator,
		repo:         repo,
		metrics:      metrics,
		logger:       logger,
	}
}

// WaitBackground blocks until all background audit writes complete
func (s *MonitoringService) WaitBackground() {
	s.wgBg.Wait()
}

// CropSeries generates the trailing series, filtered to region, with summary statistics.
// days <= 0 uses the configured default.
func (s *MonitoringService) CropSeries(days int, region domain.Region) domain.CropSeriesResponse {
	if days <= 0 {
		days = s.days
	}
	series := synth.FilterRegion(s.newGenerator().CropSeries(days), region)

	name := string(region)
	if name == "" {
		name = "All"
	}
	return domain.CropSeriesResponse{
		Region:  name,
		Samples: series,
		Summary: synth.Describe(series),
	}
}

// AnalyzeImage decodes an uploaded image and classifies its condition by brightness
func (s *MonitoringService) AnalyzeImage(ctx context.Context, r io.Reader, filename string) (domain.ImageConditionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImageConditionResult{}, fmt.Errorf("monitoring: analyze image: %w", err)
	}

	img, format, err := vision.DecodeLimit(r, s.maxPixels)
	if err != nil {
		return domain.ImageConditionResult{}, fmt.Errorf("monitoring: %w", err)
	}

	result, err := vision.Classify(img)
	if err != nil {
		return domain.ImageConditionResult{}, fmt.Errorf("monitoring: %w", err)
	}
	s.metrics.Classifications.WithLabelValues(string(result.Condition)).Inc()

	b := img.Bounds()
	s.logger.Debug("crop image classified",
		zap.String("filename", filename),
		zap.String("format", format),
		zap.Float64("brightness", result.Brightness),
		zap.String("condition", string(result.Condition)),
	)

	entry := domain.ImageAnalysisLog{
		ID:         uuid.NewString(),
		Filename:   filename,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Brightness: result.Brightness,
		Condition:  result.Condition,
		CreatedAt:  time.Now().UTC(),
	}
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveImageAnalysisLog(bgCtx, entry); err != nil {
			s.logger.Warn("failed to save image analysis log", zap.Error(err))
		}
	}()

	return result, nil
}
