package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/agriempower/backend/internal/domain"
	"github.com/agriempower/backend/pkg/utils"
)

var validate = validator.New()

// predictRequest carries the five slider values. Missing fields are rejected.
type predictRequest struct {
	Moisture   *float64 `json:"moisture" validate:"required"`
	PH         *float64 `json:"ph" validate:"required"`
	Nitrogen   *float64 `json:"nitrogen" validate:"required"`
	Phosphorus *float64 `json:"phosphorus" validate:"required"`
	Potassium  *float64 `json:"potassium" validate:"required"`
}

// features clamps each value into its slider range
func (r predictRequest) features() domain.SoilFeatureVector {
	return domain.SoilFeatureVector{
		Moisture:   clampTo(*r.Moisture, domain.MoistureRange),
		PH:         clampTo(*r.PH, domain.PHRange),
		Nitrogen:   clampTo(*r.Nitrogen, domain.NitrogenRange),
		Phosphorus: clampTo(*r.Phosphorus, domain.PhosphorusRange),
		Potassium:  clampTo(*r.Potassium, domain.PotassiumRange),
	}
}

func clampTo(v float64, r domain.Range) float64 {
	return utils.Clamp(v, r.Min, r.Max)
}

// reportRequest is the community report form
type reportRequest struct {
	Issue    string `json:"issue" validate:"required,max=2000"`
	Location string `json:"location" validate:"required,max=200"`
	Severity int    `json:"severity" validate:"min=1,max=10"`
}

func (r reportRequest) report() domain.CommunityReport {
	return domain.CommunityReport{
		Issue:    r.Issue,
		Location: r.Location,
		Severity: r.Severity,
	}
}
