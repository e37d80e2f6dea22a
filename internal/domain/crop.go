package domain

import "time"

// Region is a coarse geographic bucket for crop metrics
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Regions lists the regions in the order the generator cycles through them
var Regions = []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}

// ParseRegion matches a region name; "" and "All" return ok with an empty region
func ParseRegion(s string) (Region, bool) {
	if s == "" || s == "All" {
		return "", true
	}
	for _, r := range Regions {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Bounds for synthetic crop metrics
var (
	SoilMoisturePctRange = Range{Min: 20, Max: 80}
	CropHealthRange      = Range{Min: 50, Max: 100}
	PestRiskPctRange     = Range{Min: 5, Max: 40}
)

// CropMetricSample is one day of synthetic crop monitoring data
type CropMetricSample struct {
	Date            time.Time `json:"date"`
	SoilMoisturePct float64   `json:"soil_moisture_pct"`
	CropHealthScore float64   `json:"crop_health_score"`
	PestRiskPct     float64   `json:"pest_risk_pct"`
	Region          Region    `json:"region"`
}

// ColumnSummary mirrors a describe() row for one numeric column
type ColumnSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Max   float64 `json:"max"`
}

// CropSummary holds summary statistics for a crop series
type CropSummary struct {
	SoilMoisturePct ColumnSummary `json:"soil_moisture_pct"`
	CropHealthScore ColumnSummary `json:"crop_health_score"`
	PestRiskPct     ColumnSummary `json:"pest_risk_pct"`
}

// CropSeriesResponse is returned by the crop trends endpoint
type CropSeriesResponse struct {
	Region  string             `json:"region"`
	Samples []CropMetricSample `json:"samples"`
	Summary CropSummary        `json:"summary"`
}

// CropCondition is the label produced by the image heuristic
type CropCondition string

const (
	ConditionHealthy  CropCondition = "Healthy"
	ConditionStressed CropCondition = "Stressed"
	ConditionFailure  CropCondition = "Failure"
)

// ImageConditionResult is the outcome of analysing one crop image
type ImageConditionResult struct {
	Condition   CropCondition `json:"condition"`
	Description string        `json:"description"`
	Brightness  float64       `json:"brightness"`
}
