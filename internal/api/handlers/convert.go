package handlers

import (
	"land-valuation/internal/api/models"
	"land-valuation/internal/model"
	"land-valuation/internal/proforma"
	"land-valuation/internal/solver"
)

func assumptionsMap(a model.ProjectAssumptions) map[string]float64 {
	out := make(map[string]float64)
	for _, f := range model.Fields() {
		v, _ := a.Value(f.Name)
		out[f.Name] = v
	}
	return out
}

func toProForma(r *proforma.Result, includeSchedule bool) models.ProFormaResponse {
	out := models.ProFormaResponse{
		BuildableArea:         r.BuildableArea,
		UnitCount:             r.UnitCount,
		HardCosts:             r.HardCosts,
		SoftCosts:             r.SoftCosts,
		TotalConstructionCost: r.TotalConstructionCost,
		LandCost:              r.LandCost,
		TotalProjectCost:      r.TotalProjectCost,
		GrossPotentialRent:    r.GrossPotentialRent,
		EffectiveGrossIncome:  r.EffectiveGrossIncome,
		OperatingExpenses:     r.OperatingExpenses,
		NOI:                   r.NOI,
		ExitNOI:               r.ExitNOI,
		ExitValue:             r.ExitValue,
		StabilizedValue:       r.StabilizedValue,
		EquityInvestment:      r.EquityInvestment,
		EquityMultiple:        r.EquityMultiple,
		CashFlows:             r.CashFlows,
	}
	if r.IRRDefined {
		irr := r.IRR
		out.IRR = &irr
	}
	if includeSchedule {
		out.Schedule = make([]models.ScheduleRow, 0, len(r.Schedule))
		for _, row := range r.Schedule {
			out.Schedule = append(out.Schedule, models.ScheduleRow{
				Year:               row.Year,
				NOI:                row.NOI,
				EquityNOI:          row.EquityNOI,
				ExitProceeds:       row.ExitProceeds,
				CashFlow:           row.CashFlow,
				CumulativeCashFlow: row.CumulativeCashFlow,
			})
		}
	}
	return out
}

func toSolverOptions(in *models.SolverOptions) solver.Options {
	opts := solver.DefaultOptions()
	if in == nil {
		return opts
	}
	opts.LowerBound = in.LowerBound
	if in.UpperBound != 0 {
		opts.UpperBound = in.UpperBound
	}
	if in.Tolerance != 0 {
		opts.Tolerance = in.Tolerance
	}
	opts.MaxIterations = in.MaxIterations
	return opts
}

func warning(r *solver.Result) string {
	if err := r.ConvergenceError(); err != nil {
		return err.Error()
	}
	return ""
}
