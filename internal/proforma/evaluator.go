// Package proforma maps development assumptions plus a land cost into a cash-flow schedule,
// NOI, exit value and equity IRR.
package proforma

import (
	"errors"
	"fmt"
	"math"

	"land-valuation/internal/finance"
	"land-valuation/internal/model"
)

// Evaluate runs the pro forma for one land cost.
//
// It is a pure function of its inputs: identical arguments give bit-identical results.
// A parcel too small for a single unit is valid and yields zero income. Cash flows without
// an IRR are reported through Result.IRRDefined rather than as an error; only invalid
// inputs fail.
func Evaluate(a model.ProjectAssumptions, landCost float64) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(landCost) || math.IsInf(landCost, 0) {
		return nil, model.InvalidField("land_cost", "must be a finite number")
	}
	if landCost < 0 {
		return nil, model.InvalidField("land_cost", "must be >= 0")
	}

	r := &Result{
		Assumptions: a,
		LandCost:    landCost,
	}

	// Development budget.
	r.BuildableArea = a.LotSizeArea * a.FloorAreaRatio
	// Partial units are not buildable.
	r.UnitCount = int(math.Floor(r.BuildableArea / a.UnitSizeArea))
	r.HardCosts = r.BuildableArea * a.HardCostPerArea
	r.SoftCosts = r.HardCosts * a.SoftCostRatio
	r.TotalConstructionCost = r.HardCosts + r.SoftCosts
	r.TotalProjectCost = r.TotalConstructionCost + landCost

	// Stabilized operations (year 1).
	r.GrossPotentialRent = a.MonthlyRentPerUnit * 12 * float64(r.UnitCount)
	r.EffectiveGrossIncome = r.GrossPotentialRent * (1 - a.VacancyRate)
	r.OperatingExpenses = r.EffectiveGrossIncome * a.OperatingExpenseRatio
	r.NOI = r.EffectiveGrossIncome - r.OperatingExpenses
	r.StabilizedValue = r.NOI / a.GoingInCapRate

	// Exit.
	r.ExitNOI = r.NOI * math.Pow(1+a.AnnualRentGrowthRate, float64(a.HoldPeriodYears))
	r.ExitValue = r.ExitNOI / a.ExitCapRate

	r.EquityInvestment = r.TotalProjectCost * a.EquityRatio
	r.CashFlows, r.Schedule = buildSchedule(a, r.NOI, r.ExitValue, r.EquityInvestment)

	inflows := 0.0
	for _, cf := range r.CashFlows[1:] {
		inflows += cf
	}
	if r.EquityInvestment > 0 {
		r.EquityMultiple = inflows / r.EquityInvestment
	}

	irr, err := finance.IRR(r.CashFlows)
	switch {
	case err == nil:
		r.IRR = irr
		r.IRRDefined = true
	case errors.Is(err, model.ErrIRRUndefined):
		r.IRR = math.NaN()
	default:
		return nil, fmt.Errorf("irr: %w", err)
	}
	return r, nil
}

// buildSchedule lays out the equity cash flows.
// Operating cash flow is scaled by the equity ratio; exit proceeds are added unscaled in the
// final year.
func buildSchedule(a model.ProjectAssumptions, noi, exitValue, equity float64) ([]float64, []ScheduleRow) {
	flows := make([]float64, a.HoldPeriodYears+1)
	rows := make([]ScheduleRow, 0, a.HoldPeriodYears+1)

	flows[0] = -equity
	cum := flows[0]
	rows = append(rows, ScheduleRow{
		Year:               0,
		CashFlow:           flows[0],
		CumulativeCashFlow: cum,
	})

	for i := 0; i < a.HoldPeriodYears; i++ {
		yearNOI := noi * math.Pow(1+a.AnnualRentGrowthRate, float64(i))
		equityNOI := yearNOI * a.EquityRatio
		cf := equityNOI
		exit := 0.0
		if i == a.HoldPeriodYears-1 {
			exit = exitValue
			cf += exit
		}
		flows[i+1] = cf
		cum += cf

		rows = append(rows, ScheduleRow{
			Year:               i + 1,
			NOI:                yearNOI,
			EquityNOI:          equityNOI,
			ExitProceeds:       exit,
			CashFlow:           cf,
			CumulativeCashFlow: cum,
		})
	}
	return flows, rows
}
