package solver

import (
	"math"

	"land-valuation/internal/model"
	"land-valuation/internal/proforma"
)

// ResidualResult is the land value implied by a developer profit margin on stabilized value.
type ResidualResult struct {
	TargetProfitMargin float64
	StabilizedValue    float64
	// TargetTotalCost = StabilizedValue * (1 - margin).
	TargetTotalCost       float64
	TotalConstructionCost float64
	// ResidualLandValue may be negative when construction alone exceeds the target cost.
	ResidualLandValue float64
	Feasible          bool

	// ProForma is evaluated at max(ResidualLandValue, 0) for reporting.
	ProForma *proforma.Result
}

// ResidualLandValue derives the land price from a target profit margin, independently of
// the IRR solve. The margin is measured on stabilized value: profit / value.
func ResidualLandValue(a model.ProjectAssumptions, targetProfitMargin float64) (*ResidualResult, error) {
	if math.IsNaN(targetProfitMargin) || targetProfitMargin < 0 || targetProfitMargin >= 1 {
		return nil, model.InvalidField("target_profit_margin", "must be in [0, 1)")
	}
	base, err := proforma.Evaluate(a, 0)
	if err != nil {
		return nil, err
	}

	targetCost := base.StabilizedValue * (1 - targetProfitMargin)
	residual := targetCost - base.TotalConstructionCost

	pf := base
	if residual > 0 {
		pf, err = proforma.Evaluate(a, residual)
		if err != nil {
			return nil, err
		}
	}

	return &ResidualResult{
		TargetProfitMargin:    targetProfitMargin,
		StabilizedValue:       base.StabilizedValue,
		TargetTotalCost:       targetCost,
		TotalConstructionCost: base.TotalConstructionCost,
		ResidualLandValue:     residual,
		Feasible:              residual > 0,
		ProForma:              pf,
	}, nil
}
