// Package solver inverts the pro forma: it finds the land price that meets a target IRR.
package solver

import (
	"fmt"
	"log/slog"
	"math"

	"land-valuation/internal/model"
	"land-valuation/internal/optimize"
	"land-valuation/internal/proforma"
)

const (
	DefaultUpperBound = 50_000_000.0
	DefaultTolerance  = 1e-6

	// undefinedIRRPenalty stands in for |IRR - target| when the IRR does not exist.
	// Finite so the minimizer's interpolation stays well defined.
	undefinedIRRPenalty = 1e9
)

// Options bounds the search. Zero fields take defaults, except LowerBound whose default is 0.
type Options struct {
	LowerBound float64
	UpperBound float64 // default 50,000,000
	// Tolerance on |IRR - target| for the solve to count as converged (default 1e-6).
	Tolerance float64
	// XTol is the land-cost resolution handed to the minimizer.
	XTol          float64
	MaxIterations int
}

// DefaultOptions searches [0, 50,000,000].
func DefaultOptions() Options {
	return Options{
		LowerBound: 0,
		UpperBound: DefaultUpperBound,
		Tolerance:  DefaultTolerance,
	}
}

// Result is the solver's answer. LandCost is always the best estimate; check Converged
// before treating it as exact.
type Result struct {
	LandCost  float64
	TargetIRR float64
	// AchievedIRR is nil when the IRR is undefined at LandCost.
	AchievedIRR    *float64
	ObjectiveError float64
	Converged      bool
	// Boundary is set when the target is unreachable inside the bounds and LandCost is a bound.
	Boundary bool

	LowerBound float64
	UpperBound float64

	Iterations  int
	Evaluations int

	ProForma *proforma.Result
}

// ConvergenceError returns a wrapped model.ErrSolverDidNotConverge for unconverged results.
// It is informational: the result remains usable.
func (r *Result) ConvergenceError() error {
	if r == nil || r.Converged {
		return nil
	}
	if r.Boundary {
		return fmt.Errorf("%w: target irr %.6f unreachable within [%.2f, %.2f], returning bound %.2f",
			model.ErrSolverDidNotConverge, r.TargetIRR, r.LowerBound, r.UpperBound, r.LandCost)
	}
	return fmt.Errorf("%w: |irr - target| = %.3g after %d evaluations",
		model.ErrSolverDidNotConverge, r.ObjectiveError, r.Evaluations)
}

// SolveLandPrice finds the land cost at which the pro forma IRR equals a.TargetIRR.
//
// IRR falls strictly as land cost rises, so the root is unique inside the bounds when it
// exists. When the target is above the IRR at the lower bound, or below the IRR at the upper
// bound, the corresponding bound is returned with Converged=false.
func SolveLandPrice(a model.ProjectAssumptions, opts Options) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	target := a.TargetIRR
	evals := 0
	objective := func(landCost float64) float64 {
		evals++
		r, err := proforma.Evaluate(a, landCost)
		if err != nil || !r.IRRDefined {
			return undefinedIRRPenalty
		}
		return math.Abs(r.IRR - target)
	}

	// Unreachable targets are settled at the bounds without searching.
	atLo, err := proforma.Evaluate(a, opts.LowerBound)
	if err != nil {
		return nil, err
	}
	if atLo.IRRDefined && atLo.IRR < target {
		slog.Debug("target irr above achievable irr at lower bound",
			"target", target, "irr", atLo.IRR, "lower_bound", opts.LowerBound)
		return newResult(atLo, target, opts, true, 1, 0), nil
	}
	atHi, err := proforma.Evaluate(a, opts.UpperBound)
	if err != nil {
		return nil, err
	}
	if atHi.IRRDefined && atHi.IRR > target {
		slog.Debug("target irr below achievable irr at upper bound",
			"target", target, "irr", atHi.IRR, "upper_bound", opts.UpperBound)
		return newResult(atHi, target, opts, true, 2, 0), nil
	}

	best, err := optimize.MinimizeBounded(objective, opts.LowerBound, opts.UpperBound, optimize.Options{
		XTol:    opts.XTol,
		MaxIter: opts.MaxIterations,
	})
	if err != nil {
		return nil, err
	}

	landCost := best.X
	if best.Fun >= undefinedIRRPenalty {
		// No evaluated point had an IRR; nothing to prefer over the lower bound.
		landCost = opts.LowerBound
	}
	pf, err := proforma.Evaluate(a, landCost)
	if err != nil {
		return nil, err
	}

	res := newResult(pf, target, opts, false, 2+evals, best.Iterations)
	res.Converged = best.Converged && res.ObjectiveError <= opts.Tolerance

	slog.Debug("solved land price",
		"land_cost", res.LandCost,
		"target", target,
		"objective", res.ObjectiveError,
		"converged", res.Converged,
		"evaluations", res.Evaluations)
	return res, nil
}

func newResult(pf *proforma.Result, target float64, opts Options, boundary bool, evals, iters int) *Result {
	res := &Result{
		LandCost:       pf.LandCost,
		TargetIRR:      target,
		ObjectiveError: undefinedIRRPenalty,
		Boundary:       boundary,
		LowerBound:     opts.LowerBound,
		UpperBound:     opts.UpperBound,
		Iterations:     iters,
		Evaluations:    evals,
		ProForma:       pf,
	}
	if pf.IRRDefined {
		irr := pf.IRR
		res.AchievedIRR = &irr
		res.ObjectiveError = math.Abs(irr - target)
	}
	return res
}

func normalize(opts Options) (Options, error) {
	if opts.UpperBound == 0 {
		opts.UpperBound = DefaultUpperBound
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if math.IsNaN(opts.LowerBound) || math.IsInf(opts.LowerBound, 0) || opts.LowerBound < 0 {
		return opts, model.InvalidField("lower_bound", "must be a finite number >= 0")
	}
	if math.IsNaN(opts.UpperBound) || math.IsInf(opts.UpperBound, 0) {
		return opts, model.InvalidField("upper_bound", "must be a finite number")
	}
	if opts.UpperBound < opts.LowerBound {
		return opts, model.InvalidField("upper_bound", "must be >= lower_bound")
	}
	return opts, nil
}
