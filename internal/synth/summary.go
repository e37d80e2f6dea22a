package synth

import (
	"math"
	"sort"

	"github.com/agriempower/backend/internal/domain"
)

// FilterRegion keeps the samples of one region. An empty region keeps everything.
func FilterRegion(series []domain.CropMetricSample, region domain.Region) []domain.CropMetricSample {
	if region == "" {
		return series
	}
	out := make([]domain.CropMetricSample, 0, len(series))
	for _, s := range series {
		if s.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// Describe computes summary statistics for each numeric column of the series
func Describe(series []domain.CropMetricSample) domain.CropSummary {
	moisture := make([]float64, len(series))
	health := make([]float64, len(series))
	pest := make([]float64, len(series))
	for i, s := range series {
		moisture[i] = s.SoilMoisturePct
		health[i] = s.CropHealthScore
		pest[i] = s.PestRiskPct
	}

	return domain.CropSummary{
		SoilMoisturePct: describeColumn(moisture),
		CropHealthScore: describeColumn(health),
		PestRiskPct:     describeColumn(pest),
	}
}

func describeColumn(values []float64) domain.ColumnSummary {
	n := len(values)
	if n == 0 {
		return domain.ColumnSummary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	// sample standard deviation, reported as 0 for a single value so it stays JSON-encodable
	var std float64
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - mean) * (v - mean)
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	return domain.ColumnSummary{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   sorted[0],
		P25:   quantile(sorted, 0.25),
		P50:   quantile(sorted, 0.50),
		P75:   quantile(sorted, 0.75),
		Max:   sorted[n-1],
	}
}

// quantile uses linear interpolation between closest ranks on sorted input
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
