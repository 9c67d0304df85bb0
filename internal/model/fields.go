package model

import "sort"

// FieldInfo describes one numeric assumption as exposed to front ends.
// Min/Max are suggested input ranges for forms, not validation limits.
type FieldInfo struct {
	Name        string
	Description string
	Unit        string // "area", "money", "ratio", "years", "multiplier"
	Default     float64
	Min         float64
	Max         float64

	get func(ProjectAssumptions) float64
	set func(*ProjectAssumptions, float64) error
}

func floatField(name, desc, unit string, lo, hi float64, get func(ProjectAssumptions) float64, set func(*ProjectAssumptions, float64)) FieldInfo {
	return FieldInfo{
		Name:        name,
		Description: desc,
		Unit:        unit,
		Default:     get(DefaultAssumptions()),
		Min:         lo,
		Max:         hi,
		get:         get,
		set: func(a *ProjectAssumptions, v float64) error {
			set(a, v)
			return nil
		},
	}
}

var fields = []FieldInfo{
	floatField("lot_size_area", "Lot size", "area", 0, 0,
		func(a ProjectAssumptions) float64 { return a.LotSizeArea },
		func(a *ProjectAssumptions, v float64) { a.LotSizeArea = v }),
	floatField("floor_area_ratio", "Floor area ratio (buildable area / lot area)", "multiplier", 0, 0,
		func(a ProjectAssumptions) float64 { return a.FloorAreaRatio },
		func(a *ProjectAssumptions, v float64) { a.FloorAreaRatio = v }),
	floatField("unit_size_area", "Average unit size", "area", 0, 0,
		func(a ProjectAssumptions) float64 { return a.UnitSizeArea },
		func(a *ProjectAssumptions, v float64) { a.UnitSizeArea = v }),
	floatField("monthly_rent_per_unit", "Monthly rent per unit", "money", 0, 0,
		func(a ProjectAssumptions) float64 { return a.MonthlyRentPerUnit },
		func(a *ProjectAssumptions, v float64) { a.MonthlyRentPerUnit = v }),
	floatField("vacancy_rate", "Vacancy rate", "ratio", 0, 0.2,
		func(a ProjectAssumptions) float64 { return a.VacancyRate },
		func(a *ProjectAssumptions, v float64) { a.VacancyRate = v }),
	floatField("operating_expense_ratio", "Operating expenses as a share of effective gross income", "ratio", 0, 1,
		func(a ProjectAssumptions) float64 { return a.OperatingExpenseRatio },
		func(a *ProjectAssumptions, v float64) { a.OperatingExpenseRatio = v }),
	floatField("hard_cost_per_area", "Hard cost per unit of buildable area", "money", 0, 0,
		func(a ProjectAssumptions) float64 { return a.HardCostPerArea },
		func(a *ProjectAssumptions, v float64) { a.HardCostPerArea = v }),
	floatField("soft_cost_ratio", "Soft costs as a share of hard costs", "ratio", 0, 1,
		func(a ProjectAssumptions) float64 { return a.SoftCostRatio },
		func(a *ProjectAssumptions, v float64) { a.SoftCostRatio = v }),
	floatField("going_in_cap_rate", "Going-in cap rate (stabilized value)", "ratio", 0.02, 0.10,
		func(a ProjectAssumptions) float64 { return a.GoingInCapRate },
		func(a *ProjectAssumptions, v float64) { a.GoingInCapRate = v }),
	floatField("exit_cap_rate", "Exit cap rate", "ratio", 0.02, 0.10,
		func(a ProjectAssumptions) float64 { return a.ExitCapRate },
		func(a *ProjectAssumptions, v float64) { a.ExitCapRate = v }),
	{
		Name:        "hold_period_years",
		Description: "Hold period in whole years",
		Unit:        "years",
		Default:     float64(DefaultAssumptions().HoldPeriodYears),
		Min:         1,
		Max:         MaxHoldPeriodYears,
		get:         func(a ProjectAssumptions) float64 { return float64(a.HoldPeriodYears) },
		set: func(a *ProjectAssumptions, v float64) error {
			n, err := HoldPeriodFromFloat(v)
			if err != nil {
				return err
			}
			a.HoldPeriodYears = n
			return nil
		},
	},
	floatField("annual_rent_growth_rate", "Annual rent growth", "ratio", 0, 0.10,
		func(a ProjectAssumptions) float64 { return a.AnnualRentGrowthRate },
		func(a *ProjectAssumptions, v float64) { a.AnnualRentGrowthRate = v }),
	floatField("equity_ratio", "Share of total project cost funded by equity", "ratio", 0.1, 1,
		func(a ProjectAssumptions) float64 { return a.EquityRatio },
		func(a *ProjectAssumptions, v float64) { a.EquityRatio = v }),
	floatField("target_irr", "Target equity IRR", "ratio", 0.05, 0.30,
		func(a ProjectAssumptions) float64 { return a.TargetIRR },
		func(a *ProjectAssumptions, v float64) { a.TargetIRR = v }),
}

var fieldsByName = func() map[string]FieldInfo {
	m := make(map[string]FieldInfo, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// Fields lists the numeric assumptions in display order.
func Fields() []FieldInfo {
	out := make([]FieldInfo, len(fields))
	copy(out, fields)
	return out
}

// Value returns the named field of a.
func (a ProjectAssumptions) Value(name string) (float64, bool) {
	f, ok := fieldsByName[name]
	if !ok {
		return 0, false
	}
	return f.get(a), true
}

// WithOverrides returns a copy of a with the named fields replaced. Zero is a valid override.
// Unknown names fail; the result is not validated.
func (a ProjectAssumptions) WithOverrides(overrides map[string]float64) (ProjectAssumptions, error) {
	out := a
	// Sorted so the first reported error is deterministic.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := fieldsByName[name]
		if !ok {
			return a, invalid(name, "is not a known assumption")
		}
		if err := f.set(&out, overrides[name]); err != nil {
			return a, err
		}
	}
	return out, nil
}
