// Package synth produces the mock soil and crop records the dashboard renders.
package synth

import (
	"math/rand"
	"time"

	"github.com/agriempower/backend/internal/domain"
	"github.com/agriempower/backend/pkg/utils"
)

const (
	// DefaultSoilSamples is the size of one training batch
	DefaultSoilSamples = 100

	// DefaultCropDays is the length of the trailing crop series
	DefaultCropDays = 30
)

// Generator draws independent uniform values for every field of every record.
// A Generator is not safe for concurrent use; create one per request.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithClock overrides the reference time used for crop series dates
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a generator reading from rng
func New(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewUnseeded creates a generator with a random seed, so every call produces new data
func NewUnseeded(opts ...Option) *Generator {
	return New(rand.New(rand.NewSource(rand.Int63())), opts...)
}

// SoilSamples returns n labeled soil samples.
// Labels are drawn independently of the features, so no relationship exists between them.
func (g *Generator) SoilSamples(n int) []domain.SoilSample {
	if n <= 0 {
		return []domain.SoilSample{}
	}

	samples := make([]domain.SoilSample, n)
	for i := range samples {
		samples[i] = domain.SoilSample{
			SoilFeatureVector: domain.SoilFeatureVector{
				Moisture:   g.uniform(domain.MoistureRange),
				PH:         g.uniform(domain.PHRange),
				Nitrogen:   g.uniform(domain.NitrogenRange),
				Phosphorus: g.uniform(domain.PhosphorusRange),
				Potassium:  g.uniform(domain.PotassiumRange),
			},
			Fertility: domain.FertilityLabels[g.rng.Intn(len(domain.FertilityLabels))],
		}
	}
	return samples
}

// CropSeries returns one sample per day for the trailing days, newest first.
// Regions cycle North, South, East, West.
func (g *Generator) CropSeries(days int) []domain.CropMetricSample {
	if days <= 0 {
		return []domain.CropMetricSample{}
	}

	now := g.now()
	series := make([]domain.CropMetricSample, days)
	for i := range series {
		series[i] = domain.CropMetricSample{
			Date:            now.AddDate(0, 0, -i),
			SoilMoisturePct: g.uniform(domain.SoilMoisturePctRange),
			CropHealthScore: g.uniform(domain.CropHealthRange),
			PestRiskPct:     g.uniform(domain.PestRiskPctRange),
			Region:          domain.Regions[i%len(domain.Regions)],
		}
	}
	return series
}

func (g *Generator) uniform(r domain.Range) float64 {
	return utils.Lerp(r.Min, r.Max, g.rng.Float64())
}
