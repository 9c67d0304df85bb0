// Package finance holds discounting helpers shared by the pro forma and the solver.
package finance

import (
	"math"

	"land-valuation/internal/model"
)

const (
	irrTolerance = 1e-12 // relative once |r| > 1
	irrMaxIter   = 200
)

// bracketRates is scanned in order for the first NPV sign change.
// The lower end stays above -1 so (1+r)^t is defined for long holds.
var bracketRates = []float64{
	-0.99, -0.95, -0.9, -0.75, -0.5, -0.25, 0, 0.1, 0.25, 0.5, 1, 2, 5, 10, 100, 1e3, 1e4, 1e6,
}

// maxDownwardExponent bounds the walk toward -1 at -1+1e-15, the last step float64 still
// separates from -1.
const maxDownwardExponent = 15

// NPV discounts flows at rate; flows[0] is undiscounted (t=0).
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// npvWithDerivative returns NPV(rate) and dNPV/drate.
func npvWithDerivative(rate float64, flows []float64) (float64, float64) {
	npv, d := 0.0, 0.0
	for t, cf := range flows {
		ft := float64(t)
		df := math.Pow(1+rate, ft)
		npv += cf / df
		d -= ft * cf / (df * (1 + rate))
	}
	return npv, d
}

// SignChanges counts sign changes across flows, ignoring zeros.
func SignChanges(flows []float64) int {
	changes := 0
	prev := 0.0
	for _, cf := range flows {
		if cf == 0 {
			continue
		}
		if prev != 0 && (cf > 0) != (prev > 0) {
			changes++
		}
		prev = cf
	}
	return changes
}

// IRR returns the rate r solving sum(CF_t / (1+r)^t) = 0.
//
// The rates in bracketRates are scanned first. When no sign change turns up there, the search
// continues outward: toward -1 through -1+10^-k, then above the grid by doubling. Flows without a
// sign change have no IRR and yield model.ErrIRRUndefined. The search also gives up with
// model.ErrIRRUndefined when the NPV overflows (or r itself does) before any sign change is
// found; near -1 that happens once (1+r)^t underflows for the later flows.
//
// Flows with several sign changes can have several roots, or none; the first bracketed one is
// returned. Development cash flows (one outflow followed by inflows) have exactly one.
func IRR(flows []float64) (float64, error) {
	if len(flows) < 2 || SignChanges(flows) == 0 {
		return math.NaN(), model.ErrIRRUndefined
	}

	first := bracketRates[0]
	ffirst := NPV(first, flows)
	if !isFinite(ffirst) {
		return math.NaN(), model.ErrIRRUndefined
	}
	if ffirst == 0 {
		return first, nil
	}

	lo, flo := first, ffirst
	for _, hi := range bracketRates[1:] {
		fhi := NPV(hi, flows)
		if !isFinite(fhi) {
			return math.NaN(), model.ErrIRRUndefined
		}
		if fhi == 0 {
			return hi, nil
		}
		if (fhi > 0) != (flo > 0) {
			return refine(flows, lo, flo, hi), nil
		}
		lo, flo = hi, fhi
	}

	// Below the grid.
	hi, fhi := first, ffirst
	for k := 3; k <= maxDownwardExponent; k++ {
		r := -1 + math.Pow(10, -float64(k))
		f := NPV(r, flows)
		if !isFinite(f) {
			break
		}
		if f == 0 {
			return r, nil
		}
		if (f > 0) != (fhi > 0) {
			return refine(flows, r, f, hi), nil
		}
		hi, fhi = r, f
	}

	// Above the grid. lo is the top grid rate here.
	for r := 2 * lo; !math.IsInf(r, 1); r *= 2 {
		f := NPV(r, flows)
		if !isFinite(f) {
			break
		}
		if f == 0 {
			return r, nil
		}
		if (f > 0) != (flo > 0) {
			return refine(flows, lo, flo, r), nil
		}
		lo, flo = r, f
	}
	return math.NaN(), model.ErrIRRUndefined
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// refine runs Newton steps, falling back to bisection whenever a step leaves [a, b].
func refine(flows []float64, a, fa, b float64) float64 {
	x := a + (b-a)/2
	for i := 0; i < irrMaxIter; i++ {
		fx, dfx := npvWithDerivative(x, flows)
		if fx == 0 {
			return x
		}
		if (fx > 0) == (fa > 0) {
			a, fa = x, fx
		} else {
			b = x
		}

		next := x - fx/dfx
		if dfx == 0 || math.IsNaN(next) || next <= a || next >= b {
			next = a + (b-a)/2
		}
		if math.Abs(next-x) < irrTolerance*math.Max(1, math.Abs(x)) {
			return next
		}
		x = next
	}
	return x
}
