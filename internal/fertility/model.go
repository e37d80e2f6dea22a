// Package fertility fits a random forest mapping soil features to a fertility label.
package fertility

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/agriempower/backend/internal/domain"
)

const (
	DefaultTrees           = 100
	DefaultMaxDepth        = 16
	DefaultMinSamplesSplit = 2
	DefaultSeed            = 42
)

// Options controls forest construction
type Options struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	// MaxFeatures is the number of features considered per split; 0 means floor(sqrt(features))
	MaxFeatures int
	// Seed drives bootstrap sampling and feature selection, never the data
	Seed int64
}

// DefaultOptions returns the forest settings used by the advisory
func DefaultOptions() Options {
	return Options{
		Trees:           DefaultTrees,
		MaxDepth:        DefaultMaxDepth,
		MinSamplesSplit: DefaultMinSamplesSplit,
		Seed:            DefaultSeed,
	}
}

func (o Options) withDefaults() Options {
	if o.Trees <= 0 {
		o.Trees = DefaultTrees
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MinSamplesSplit < 2 {
		o.MinSamplesSplit = DefaultMinSamplesSplit
	}
	if o.MaxFeatures <= 0 || o.MaxFeatures > domain.NumSoilFeatures {
		o.MaxFeatures = int(math.Sqrt(domain.NumSoilFeatures))
	}
	return o
}

// Model is a trained forest. It is read-only after Train and safe for concurrent Predict calls.
// The zero value is an untrained model.
type Model struct {
	trees []*node
	size  int
}

// Train fits a forest on samples.
// It fails with domain.ErrInsufficientData when the batch is empty, holds an unknown
// label, or has fewer than two distinct labels.
func Train(samples []domain.SoilSample, opts Options) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("fertility: no samples: %w", domain.ErrInsufficientData)
	}

	X := make([][]float64, len(samples))
	y := make([]int, len(samples))
	distinct := map[int]struct{}{}
	for i, s := range samples {
		c := s.Fertility.Index()
		if c < 0 {
			return nil, fmt.Errorf("fertility: sample %d has unknown label %q: %w", i, s.Fertility, domain.ErrInsufficientData)
		}
		X[i] = s.Slice()
		y[i] = c
		distinct[c] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("fertility: need at least 2 distinct labels, got %d: %w", len(distinct), domain.ErrInsufficientData)
	}

	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	m := &Model{trees: make([]*node, opts.Trees), size: len(samples)}
	for t := range m.trees {
		b := &treeBuilder{
			X:           X,
			y:           y,
			numClasses:  len(domain.FertilityLabels),
			maxFeatures: opts.MaxFeatures,
			maxDepth:    opts.MaxDepth,
			minSplit:    opts.MinSamplesSplit,
			rng:         rng,
		}
		m.trees[t] = b.build(bootstrap(rng, len(samples)), 0)
	}
	return m, nil
}

func bootstrap(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

// Trained reports whether m can serve predictions
func (m *Model) Trained() bool {
	return m != nil && len(m.trees) > 0
}

// TrainingSize is the number of samples the model was fitted on
func (m *Model) TrainingSize() int {
	if m == nil {
		return 0
	}
	return m.size
}

// PredictProba returns the class distribution averaged over all trees, keyed by label
func (m *Model) PredictProba(v domain.SoilFeatureVector) (map[domain.FertilityLabel]float64, error) {
	avg, err := m.average(v)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.FertilityLabel]float64, len(avg))
	for i, p := range avg {
		out[domain.FertilityLabels[i]] = p
	}
	return out, nil
}

// Predict returns the most probable label. Ties go to the lower ordinal label.
func (m *Model) Predict(v domain.SoilFeatureVector) (domain.FertilityLabel, error) {
	avg, err := m.average(v)
	if err != nil {
		return "", err
	}
	best := 0
	for i := 1; i < len(avg); i++ {
		if avg[i] > avg[best] {
			best = i
		}
	}
	return domain.FertilityLabels[best], nil
}

func (m *Model) average(v domain.SoilFeatureVector) ([]float64, error) {
	if !m.Trained() {
		return nil, fmt.Errorf("fertility: predict: %w", domain.ErrUntrainedModel)
	}
	x := v.Slice()
	avg := make([]float64, len(domain.FertilityLabels))
	for _, t := range m.trees {
		for i, p := range t.predict(x) {
			avg[i] += p
		}
	}
	for i := range avg {
		avg[i] /= float64(len(m.trees))
	}
	return avg, nil
}
