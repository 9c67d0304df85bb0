package proforma

import "land-valuation/internal/model"

// ScheduleRow is one year of the equity cash-flow schedule.
// Year 0 holds the equity investment; the final year includes exit proceeds.
type ScheduleRow struct {
	Year int

	NOI          float64
	EquityNOI    float64
	ExitProceeds float64

	CashFlow           float64
	CumulativeCashFlow float64
}

// Result is the full pro forma for one land cost. It is built once and never mutated.
type Result struct {
	Assumptions model.ProjectAssumptions
	LandCost    float64

	BuildableArea float64
	UnitCount     int

	HardCosts             float64
	SoftCosts             float64
	TotalConstructionCost float64
	TotalProjectCost      float64

	GrossPotentialRent   float64
	EffectiveGrossIncome float64
	OperatingExpenses    float64
	NOI                  float64 // year 1

	ExitNOI   float64
	ExitValue float64

	// StabilizedValue is NOI / going-in cap rate. Supplementary; the solver ignores it.
	StabilizedValue float64

	EquityInvestment float64
	// CashFlows is the equity sequence fed to the IRR: CashFlows[0] is the (negative) investment.
	CashFlows []float64
	Schedule  []ScheduleRow

	// IRR is NaN when IRRDefined is false (no sign change in CashFlows).
	IRR        float64
	IRRDefined bool

	EquityMultiple float64
}
