package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agriempower/backend/internal/content"
	"github.com/agriempower/backend/internal/domain"
	"github.com/agriempower/backend/internal/fertility"
	"github.com/agriempower/backend/internal/repository/postgres"
	"github.com/agriempower/backend/internal/synth"
)

// seededFactory hands out generators with increasing seeds so every call sees new data
func seededFactory(start int64) GeneratorFactory {
	var (
		mu   sync.Mutex
		next = start
	)
	return func() *synth.Generator {
		mu.Lock()
		defer mu.Unlock()
		next++
		return synth.New(rand.New(rand.NewSource(next)))
	}
}

func newAdvisory(t *testing.T, cache bool) (*AdvisoryService, *postgres.MockRepository, *Metrics) {
	t.Helper()
	repo := postgres.NewMockRepository()
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewAdvisoryService(AdvisoryConfig{
		TrainingSamples: 60,
		Forest:          fertility.Options{Trees: 15, Seed: 42},
		CacheModel:      cache,
	}, seededFactory(0), repo, metrics, zap.NewNop())
	return svc, repo, metrics
}

var midpoint = domain.SoilFeatureVector{Moisture: 50, PH: 6.5, Nitrogen: 30, Phosphorus: 15, Potassium: 25}

func TestAdvisoryService_PredictRetrainsPerRequest(t *testing.T) {
	svc, repo, metrics := newAdvisory(t, false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := svc.Predict(ctx, midpoint)
		require.NoError(t, err)
		assert.Contains(t, domain.FertilityLabels, p.Fertility)
		assert.False(t, p.Cached)
		assert.Equal(t, 60, p.TrainingSize)
		assert.Equal(t, p.Probabilities[p.Fertility], p.Confidence)
		assert.Equal(t, midpoint, p.Features)
	}
	assert.Nil(t, svc.CachedModel())

	svc.WaitBackground()
	logs, err := svc.RecentPredictions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	assert.NotEmpty(t, logs[0].ID)

	var total float64
	for _, label := range domain.FertilityLabels {
		total += testutil.ToFloat64(metrics.Predictions.WithLabelValues(string(label)))
	}
	assert.Equal(t, 3.0, total)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.TrainingFailures))

	stored, err := repo.RecentPredictions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestAdvisoryService_PredictUsesCache(t *testing.T) {
	svc, _, _ := newAdvisory(t, true)
	ctx := context.Background()

	first, err := svc.Predict(ctx, midpoint)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.NotNil(t, svc.CachedModel())

	second, err := svc.Predict(ctx, midpoint)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Probabilities, second.Probabilities)

	before := svc.CachedModel()
	require.NoError(t, svc.RefreshModel())
	assert.NotSame(t, before, svc.CachedModel())
	svc.WaitBackground()
}

func TestAdvisoryService_TrainFailure(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	// a single sample can only carry one label
	svc := NewAdvisoryService(AdvisoryConfig{TrainingSamples: 1}, seededFactory(0),
		postgres.NewMockRepository(), metrics, zap.NewNop())

	_, err := svc.Predict(context.Background(), midpoint)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TrainingFailures))

	assert.ErrorIs(t, svc.RefreshModel(), domain.ErrInsufficientData)
}

func TestAdvisoryService_PredictCancelled(t *testing.T) {
	svc, repo, metrics := newAdvisory(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Predict(ctx, midpoint)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, svc.CachedModel())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues(string(domain.FertilityMedium))))

	svc.WaitBackground()
	stored, err := repo.RecentPredictions(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAdvisoryService_SoilSamples(t *testing.T) {
	svc, _, _ := newAdvisory(t, false)
	assert.Len(t, svc.SoilSamples(12), 12)
}

func TestMonitoringService_CropSeries(t *testing.T) {
	svc := NewMonitoringService(0, 0, seededFactory(10), postgres.NewMockRepository(),
		NewMetrics(prometheus.NewRegistry()), zap.NewNop())

	all := svc.CropSeries(0, "")
	assert.Equal(t, "All", all.Region)
	assert.Len(t, all.Samples, synth.DefaultCropDays)
	assert.Equal(t, synth.DefaultCropDays, all.Summary.CropHealthScore.Count)

	west := svc.CropSeries(8, domain.RegionWest)
	assert.Equal(t, "West", west.Region)
	require.Len(t, west.Samples, 2)
	for _, s := range west.Samples {
		assert.Equal(t, domain.RegionWest, s.Region)
	}
}

func encodePNG(t *testing.T, v uint8) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestMonitoringService_AnalyzeImage(t *testing.T) {
	repo := postgres.NewMockRepository()
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewMonitoringService(30, 0, seededFactory(0), repo, metrics, zap.NewNop())
	ctx := context.Background()

	res, err := svc.AnalyzeImage(ctx, encodePNG(t, 200), "field.png")
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionHealthy, res.Condition)
	assert.Equal(t, "Crop appears vibrant and well-maintained.", res.Description)

	res, err = svc.AnalyzeImage(ctx, encodePNG(t, 50), "dark.png")
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionFailure, res.Condition)

	_, err = svc.AnalyzeImage(ctx, strings.NewReader("nope"), "bad.png")
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	svc.WaitBackground()
	logs := repo.ImageAnalyses()
	require.Len(t, logs, 2)
	assert.Equal(t, "field.png", logs[0].Filename)
	assert.Equal(t, 6, logs[0].Width)
	assert.Equal(t, 4, logs[0].Height)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Classifications.WithLabelValues("Healthy")))
}

func TestMonitoringService_AnalyzeImageLimits(t *testing.T) {
	t.Run("cancelled context", func(t *testing.T) {
		repo := postgres.NewMockRepository()
		svc := NewMonitoringService(30, 0, seededFactory(0), repo, NewMetrics(prometheus.NewRegistry()), zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.AnalyzeImage(ctx, encodePNG(t, 200), "field.png")
		assert.ErrorIs(t, err, context.Canceled)
		svc.WaitBackground()
		assert.Empty(t, repo.ImageAnalyses())
	})

	t.Run("pixel cap", func(t *testing.T) {
		svc := NewMonitoringService(30, 23, seededFactory(0), postgres.NewMockRepository(),
			NewMetrics(prometheus.NewRegistry()), zap.NewNop())

		// encodePNG images are 6x4
		_, err := svc.AnalyzeImage(context.Background(), encodePNG(t, 200), "field.png")
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
	})
}

func TestDirectoryService(t *testing.T) {
	dir, err := content.Load()
	require.NoError(t, err)
	svc := NewDirectoryService(dir, zap.NewNop())
	fixed := time.Date(2025, 7, 12, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	assert.Len(t, svc.Schemes(), 4)
	assert.Len(t, svc.Resources(), 3)
	assert.Len(t, svc.Regions(), 4)
	assert.Len(t, svc.RecentReports(), 2)

	got := svc.SubmitReport(domain.CommunityReport{Issue: "Locusts", Location: "Gujarat", Severity: 8})
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, fixed, got.Date)
	assert.Equal(t, "Locusts", got.Issue)
	assert.Len(t, svc.RecentReports(), 2)
}
