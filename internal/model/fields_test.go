package model

import (
	"errors"
	"testing"
)

func TestFieldsCoverAssumptions(t *testing.T) {
	fs := Fields()
	if len(fs) != 14 {
		t.Fatalf("Expected 14 fields, got %d", len(fs))
	}
	def := DefaultAssumptions()
	for _, f := range fs {
		v, ok := def.Value(f.Name)
		if !ok {
			t.Errorf("Value(%q) not found", f.Name)
			continue
		}
		if v != f.Default {
			t.Errorf("%s: Default %f does not match DefaultAssumptions %f", f.Name, f.Default, v)
		}
	}
	if _, ok := def.Value("no_such_field"); ok {
		t.Error("Expected unknown field lookup to fail")
	}
}

func TestWithOverrides(t *testing.T) {
	base := DefaultAssumptions()
	got, err := base.WithOverrides(map[string]float64{
		"vacancy_rate":          0,
		"monthly_rent_per_unit": 3100,
		"hold_period_years":     7,
	})
	if err != nil {
		t.Fatalf("WithOverrides returned error: %v", err)
	}
	if got.VacancyRate != 0 {
		t.Errorf("Expected zero vacancy override to apply, got %f", got.VacancyRate)
	}
	if got.MonthlyRentPerUnit != 3100 {
		t.Errorf("Expected rent 3100, got %f", got.MonthlyRentPerUnit)
	}
	if got.HoldPeriodYears != 7 {
		t.Errorf("Expected hold 7, got %d", got.HoldPeriodYears)
	}
	if base.VacancyRate != 0.05 || base.HoldPeriodYears != 10 {
		t.Error("WithOverrides mutated its receiver")
	}
}

func TestWithOverridesErrors(t *testing.T) {
	base := DefaultAssumptions()
	if _, err := base.WithOverrides(map[string]float64{"rent": 1}); !errors.Is(err, ErrInvalidAssumptions) {
		t.Errorf("Expected ErrInvalidAssumptions for unknown field, got %v", err)
	}
	_, err := base.WithOverrides(map[string]float64{"hold_period_years": 7.5})
	var ie *InvalidAssumptionsError
	if !errors.As(err, &ie) || ie.Field != "hold_period_years" {
		t.Errorf("Expected hold_period_years error, got %v", err)
	}
}
