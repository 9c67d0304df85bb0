// Package report renders engine results as plain-text summaries with grouped thousands.
package report

import (
	"io"
	"math"

	"land-valuation/internal/proforma"
	"land-valuation/internal/scenario"
	"land-valuation/internal/solver"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notConverged = "n/a (did not converge)"

type writer struct {
	p   *message.Printer
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{p: message.NewPrinter(language.English), w: w}
}

func (w *writer) line(label, format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = w.p.Fprintf(w.w, "%-26s"+format+"\n", append([]any{label + ":"}, args...)...)
}

func (w *writer) money(label string, v float64) {
	w.line(label, "$%.2f", v)
}

func (w *writer) percent(label string, v float64) {
	w.line(label, "%.2f%%", v*100)
}

func (w *writer) blank() {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, "\n")
	}
}

// WriteProForma prints the development budget, operations and returns for one land cost.
func WriteProForma(out io.Writer, r *proforma.Result) error {
	w := newWriter(out)
	writeProForma(w, r)
	return w.err
}

func writeProForma(w *writer, r *proforma.Result) {
	if r.Assumptions.Name != "" {
		w.line("Project", "%s", r.Assumptions.Name)
	}
	w.line("Buildable area", "%.0f", r.BuildableArea)
	w.line("Units", "%d", r.UnitCount)
	w.money("Hard costs", r.HardCosts)
	w.money("Soft costs", r.SoftCosts)
	w.money("Total construction cost", r.TotalConstructionCost)
	w.money("Land cost", r.LandCost)
	w.money("Total project cost", r.TotalProjectCost)
	w.money("NOI (year 1)", r.NOI)
	w.money("Stabilized value", r.StabilizedValue)
	w.money("Exit value", r.ExitValue)
	w.money("Equity investment", r.EquityInvestment)
	if r.IRRDefined {
		w.percent("Equity IRR", r.IRR)
	} else {
		w.line("Equity IRR", "n/a (no sign change in cash flows)")
	}
	w.line("Equity multiple", "%.2fx", r.EquityMultiple)
}

// WriteSolve prints the solved land price followed by the pro forma at that price.
// Unconverged solves print the land price as n/a and show the best estimate separately.
func WriteSolve(out io.Writer, r *solver.Result) error {
	w := newWriter(out)
	w.percent("Target IRR", r.TargetIRR)
	if r.Converged {
		w.money("Land price", r.LandCost)
	} else {
		w.line("Land price", notConverged)
		w.money("Best estimate", r.LandCost)
	}
	if r.AchievedIRR != nil {
		w.percent("Achieved IRR", *r.AchievedIRR)
	} else {
		w.line("Achieved IRR", "n/a")
	}
	if err := r.ConvergenceError(); err != nil {
		w.line("Note", "%s", err.Error())
	}
	w.blank()
	writeProForma(w, r.ProForma)
	return w.err
}

// WriteResidual prints the residual land value calculation.
func WriteResidual(out io.Writer, r *solver.ResidualResult) error {
	w := newWriter(out)
	w.percent("Target profit margin", r.TargetProfitMargin)
	w.money("Stabilized value", r.StabilizedValue)
	w.money("Target total cost", r.TargetTotalCost)
	w.money("Total construction cost", r.TotalConstructionCost)
	w.money("Residual land value", r.ResidualLandValue)
	if !r.Feasible {
		w.line("Feasible", "no (construction exceeds target cost)")
	}
	return w.err
}

// WriteScenarios prints one row per scenario then the probability-weighted totals.
func WriteScenarios(out io.Writer, s *scenario.Summary) error {
	w := newWriter(out)
	if w.err == nil {
		_, w.err = w.p.Fprintf(w.w, "%-18s %8s %20s %10s  %s\n", "scenario", "prob", "land price", "irr", "status")
	}
	for _, o := range s.Outcomes {
		irr := "n/a"
		if o.Result.AchievedIRR != nil {
			irr = w.p.Sprintf("%.2f%%", *o.Result.AchievedIRR*100)
		}
		status := "converged"
		if !o.Result.Converged {
			status = notConverged
		}
		if w.err == nil {
			_, w.err = w.p.Fprintf(w.w, "%-18s %8.2f %20s %10s  %s\n",
				o.Scenario.Name, o.Scenario.Probability, w.p.Sprintf("$%.2f", o.Result.LandCost), irr, status)
		}
	}
	w.blank()
	w.money("Weighted land price", s.WeightedLandCost.InexactFloat64())
	if s.ExpectedIRR != nil && !math.IsNaN(*s.ExpectedIRR) {
		w.percent("Expected IRR", *s.ExpectedIRR)
	}
	if !s.AllConverged {
		w.line("Note", "weighted price includes best estimates from unconverged scenarios")
	}
	return w.err
}
