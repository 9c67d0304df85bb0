package model

import (
	"fmt"
	"math"
)

// ProjectAssumptions defines the development and operating assumptions of a parcel.
// Units:
// - areas: one consistent unit (e.g. sqft), never converted
// - money: one currency's base unit
// - rates/ratios: fractions (0.05 = 5%), never percentages
//
// Values are passed by value and never mutated by the engine.
type ProjectAssumptions struct {
	Name string

	LotSizeArea        float64
	FloorAreaRatio     float64
	UnitSizeArea       float64
	MonthlyRentPerUnit float64

	VacancyRate           float64 // [0,1)
	OperatingExpenseRatio float64 // share of EGI, [0,1]

	HardCostPerArea float64
	SoftCostRatio   float64 // share of hard costs, >= 0

	GoingInCapRate float64
	ExitCapRate    float64

	HoldPeriodYears      int // [1, MaxHoldPeriodYears]
	AnnualRentGrowthRate float64
	EquityRatio          float64 // (0,1]
	TargetIRR            float64
}

// MaxHoldPeriodYears caps the hold so schedules stay small.
const MaxHoldPeriodYears = 100

// DefaultAssumptions returns the reference mid-rise scenario:
// 10,000 sqft lot at FAR 3.0, 1,000 sqft units renting at $2,800/month.
func DefaultAssumptions() ProjectAssumptions {
	return ProjectAssumptions{
		Name:                  "default",
		LotSizeArea:           10000,
		FloorAreaRatio:        3.0,
		UnitSizeArea:          1000,
		MonthlyRentPerUnit:    2800,
		VacancyRate:           0.05,
		OperatingExpenseRatio: 0.35,
		HardCostPerArea:       300,
		SoftCostRatio:         0.25,
		GoingInCapRate:        0.05,
		ExitCapRate:           0.05,
		HoldPeriodYears:       10,
		AnnualRentGrowthRate:  0.02,
		EquityRatio:           0.3,
		TargetIRR:             0.18,
	}
}

// Validate checks every field and reports the first violation as an *InvalidAssumptionsError.
// Nothing is clamped.
func (a ProjectAssumptions) Validate() error {
	finite := []struct {
		field string
		v     float64
	}{
		{"lot_size_area", a.LotSizeArea},
		{"floor_area_ratio", a.FloorAreaRatio},
		{"unit_size_area", a.UnitSizeArea},
		{"monthly_rent_per_unit", a.MonthlyRentPerUnit},
		{"vacancy_rate", a.VacancyRate},
		{"operating_expense_ratio", a.OperatingExpenseRatio},
		{"hard_cost_per_area", a.HardCostPerArea},
		{"soft_cost_ratio", a.SoftCostRatio},
		{"going_in_cap_rate", a.GoingInCapRate},
		{"exit_cap_rate", a.ExitCapRate},
		{"annual_rent_growth_rate", a.AnnualRentGrowthRate},
		{"equity_ratio", a.EquityRatio},
		{"target_irr", a.TargetIRR},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.field, "must be a finite number")
		}
	}

	if a.LotSizeArea <= 0 {
		return invalid("lot_size_area", "must be > 0")
	}
	if a.FloorAreaRatio <= 0 {
		return invalid("floor_area_ratio", "must be > 0")
	}
	if a.UnitSizeArea <= 0 {
		return invalid("unit_size_area", "must be > 0")
	}
	if a.MonthlyRentPerUnit < 0 {
		return invalid("monthly_rent_per_unit", "must be >= 0")
	}
	if a.VacancyRate < 0 || a.VacancyRate >= 1 {
		return invalid("vacancy_rate", "must be in [0, 1)")
	}
	if a.OperatingExpenseRatio < 0 || a.OperatingExpenseRatio > 1 {
		return invalid("operating_expense_ratio", "must be in [0, 1]")
	}
	if a.HardCostPerArea < 0 {
		return invalid("hard_cost_per_area", "must be >= 0")
	}
	if a.SoftCostRatio < 0 {
		return invalid("soft_cost_ratio", "must be >= 0")
	}
	if a.GoingInCapRate <= 0 {
		return invalid("going_in_cap_rate", "must be > 0")
	}
	if a.ExitCapRate <= 0 {
		return invalid("exit_cap_rate", "must be > 0")
	}
	if a.HoldPeriodYears < 1 {
		return invalid("hold_period_years", "must be an integer >= 1")
	}
	if a.HoldPeriodYears > MaxHoldPeriodYears {
		return invalid("hold_period_years", fmt.Sprintf("must be <= %d", MaxHoldPeriodYears))
	}
	if a.AnnualRentGrowthRate <= -1 {
		return invalid("annual_rent_growth_rate", "must be > -1")
	}
	if a.EquityRatio <= 0 || a.EquityRatio > 1 {
		return invalid("equity_ratio", "must be in (0, 1]")
	}
	return nil
}

// HoldPeriodFromFloat converts a decoded number into a hold period.
// Front ends decode numbers as float64; fractional years are rejected, not rounded.
func HoldPeriodFromFloat(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, invalid("hold_period_years", "must be an integer")
	}
	if v < 1 {
		return 0, invalid("hold_period_years", "must be an integer >= 1")
	}
	if v > MaxHoldPeriodYears {
		return 0, invalid("hold_period_years", fmt.Sprintf("must be <= %d", MaxHoldPeriodYears))
	}
	return int(v), nil
}
