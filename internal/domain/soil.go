package domain

import "fmt"

// FertilityLabel is the coarse ordinal soil productivity category
type FertilityLabel string

const (
	FertilityLow    FertilityLabel = "Low"
	FertilityMedium FertilityLabel = "Medium"
	FertilityHigh   FertilityLabel = "High"
)

// FertilityLabels lists every label in ordinal order
var FertilityLabels = []FertilityLabel{FertilityLow, FertilityMedium, FertilityHigh}

// Index returns the ordinal position of the label, or -1 if it is unknown
func (l FertilityLabel) Index() int {
	switch l {
	case FertilityLow:
		return 0
	case FertilityMedium:
		return 1
	case FertilityHigh:
		return 2
	default:
		return -1
	}
}

// Valid reports whether l is one of the known labels
func (l FertilityLabel) Valid() bool {
	return l.Index() >= 0
}

// Closed ranges the synthetic soil generator draws from.
// The UI sliders are clamped to the same bounds.
var (
	MoistureRange   = Range{Min: 20, Max: 80}
	PHRange         = Range{Min: 5.5, Max: 7.5}
	NitrogenRange   = Range{Min: 10, Max: 50}
	PhosphorusRange = Range{Min: 5, Max: 30}
	PotassiumRange  = Range{Min: 10, Max: 40}
)

// Range is a closed numeric interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max]
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SoilFeatureVector holds the five continuous soil features fed to the fertility model
type SoilFeatureVector struct {
	Moisture   float64 `json:"moisture"`
	PH         float64 `json:"ph"`
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
}

// NumSoilFeatures is the width of a SoilFeatureVector
const NumSoilFeatures = 5

// Slice returns the features in model column order
func (v SoilFeatureVector) Slice() []float64 {
	return []float64{v.Moisture, v.PH, v.Nitrogen, v.Phosphorus, v.Potassium}
}

func (v SoilFeatureVector) String() string {
	return fmt.Sprintf("moisture=%.2f ph=%.2f n=%.2f p=%.2f k=%.2f",
		v.Moisture, v.PH, v.Nitrogen, v.Phosphorus, v.Potassium)
}

// SoilSample is a labeled synthetic soil record
type SoilSample struct {
	SoilFeatureVector
	Fertility FertilityLabel `json:"fertility"`
}

// FertilityPrediction is what the advisory returns for one feature vector
type FertilityPrediction struct {
	Features      SoilFeatureVector          `json:"features"`
	Fertility     FertilityLabel             `json:"fertility"`
	Confidence    float64                    `json:"confidence"`
	Probabilities map[FertilityLabel]float64 `json:"probabilities"`
	TrainingSize  int                        `json:"training_size"`
	Cached        bool                       `json:"cached"`
}
