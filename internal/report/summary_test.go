package report

import (
	"bytes"
	"strings"
	"testing"

	"land-valuation/internal/model"
	"land-valuation/internal/proforma"
	"land-valuation/internal/scenario"
	"land-valuation/internal/solver"

	"github.com/shopspring/decimal"
)

func TestWriteProForma(t *testing.T) {
	r, err := proforma.Evaluate(model.DefaultAssumptions(), 0)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteProForma(&buf, r); err != nil {
		t.Fatalf("WriteProForma returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Project:",
		"30,000",
		"$9,000,000.00",
		"$2,250,000.00",
		"$11,250,000.00",
		"$622,440.00",
		"$12,448,800.00",
		"19.62%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteSolveConverged(t *testing.T) {
	res, err := solver.SolveLandPrice(model.DefaultAssumptions(), solver.DefaultOptions())
	if err != nil {
		t.Fatalf("SolveLandPrice returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteSolve(&buf, res); err != nil {
		t.Fatalf("WriteSolve returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "$1,398,87") {
		t.Errorf("Expected land price ~$1,398,874, got:\n%s", out)
	}
	if !strings.Contains(out, "Achieved IRR:             18.00%") {
		t.Errorf("Expected achieved IRR 18.00%%, got:\n%s", out)
	}
	if strings.Contains(out, notConverged) {
		t.Errorf("Did not expect %q for a converged solve", notConverged)
	}
}

func TestWriteSolveNotConverged(t *testing.T) {
	a := model.DefaultAssumptions()
	a.TargetIRR = 0.25
	res, err := solver.SolveLandPrice(a, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("SolveLandPrice returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteSolve(&buf, res); err != nil {
		t.Fatalf("WriteSolve returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Land price:               "+notConverged) {
		t.Errorf("Expected n/a land price, got:\n%s", out)
	}
	if !strings.Contains(out, "Best estimate:            $0.00") {
		t.Errorf("Expected best estimate $0.00, got:\n%s", out)
	}
}

func TestWriteResidual(t *testing.T) {
	res, err := solver.ResidualLandValue(model.DefaultAssumptions(), 0.15)
	if err != nil {
		t.Fatalf("ResidualLandValue returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteResidual(&buf, res); err != nil {
		t.Fatalf("WriteResidual returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "$-668,520.00") && !strings.Contains(out, "-$668,520.00") {
		t.Errorf("Expected residual -668,520.00, got:\n%s", out)
	}
	if !strings.Contains(out, "Feasible:") {
		t.Errorf("Expected infeasible note, got:\n%s", out)
	}
}

func TestWriteScenarios(t *testing.T) {
	irr := 0.18
	sum := &scenario.Summary{
		Outcomes: []scenario.Outcome{
			{Scenario: scenario.Scenario{Name: "base", Probability: 0.5}, Result: &solver.Result{LandCost: 1_000_000, AchievedIRR: &irr, Converged: true}},
			{Scenario: scenario.Scenario{Name: "stretch", Probability: 0.5}, Result: &solver.Result{LandCost: 0}},
		},
		WeightedLandCost: decimal.NewFromInt(500_000),
		AllConverged:     false,
	}
	var buf bytes.Buffer
	if err := WriteScenarios(&buf, sum); err != nil {
		t.Fatalf("WriteScenarios returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"base", "$1,000,000.00", "18.00%", "stretch", notConverged, "$500,000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Expected IRR") {
		t.Error("Did not expect an expected IRR when one scenario has none")
	}
}
