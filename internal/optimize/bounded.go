// Package optimize provides derivative-free scalar minimization.
package optimize

import (
	"fmt"
	"math"
)

const (
	// goldenSection is (3 - sqrt(5)) / 2.
	goldenSection = 0.3819660112501051

	defaultXTol    = 1e-5
	defaultMaxIter = 500
)

var sqrtEps = math.Sqrt(2.220446049250313e-16)

// Options tunes MinimizeBounded. Zero fields take defaults.
type Options struct {
	// XTol is the absolute tolerance on x (default 1e-5).
	XTol float64
	// MaxIter caps function evaluations (default 500).
	MaxIter int
}

// Result is the outcome of a bounded minimization.
type Result struct {
	X           float64
	Fun         float64
	Iterations  int
	Evaluations int
	// Converged is false when MaxIter was reached before the bracket shrank to tolerance.
	Converged bool
}

// MinimizeBounded finds a local minimum of f on [lo, hi] with Brent's method:
// golden-section steps, replaced by parabolic interpolation whenever the parabola
// is well behaved. Only interior points are evaluated.
func MinimizeBounded(f func(float64) float64, lo, hi float64, opts Options) (Result, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Result{}, fmt.Errorf("bounds must be finite, got [%v, %v]", lo, hi)
	}
	if lo > hi {
		return Result{}, fmt.Errorf("lower bound %v exceeds upper bound %v", lo, hi)
	}
	if opts.XTol <= 0 {
		opts.XTol = defaultXTol
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = defaultMaxIter
	}

	a, b := lo, hi
	// x: best point so far; w: second best; v: previous value of w.
	x := a + goldenSection*(b-a)
	w, v := x, x
	fx := f(x)
	fw, fv := fx, fx
	evals := 1
	iters := 0

	var step, prevStep float64
	mid := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(x) + opts.XTol/3
	tol2 := 2 * tol1

	converged := true
	for math.Abs(x-mid) > tol2-0.5*(b-a) {
		if evals >= opts.MaxIter {
			converged = false
			break
		}
		iters++

		useGolden := true
		if math.Abs(prevStep) > tol1 {
			// Parabola through (x, fx), (w, fw), (v, fv).
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			older := prevStep
			prevStep = step

			if math.Abs(p) < math.Abs(0.5*q*older) && p > q*(a-x) && p < q*(b-x) {
				useGolden = false
				step = p / q
				u := x + step
				if u-a < tol2 || b-u < tol2 {
					step = tol1 * signOrOne(mid-x)
				}
			}
		}
		if useGolden {
			if x >= mid {
				prevStep = a - x
			} else {
				prevStep = b - x
			}
			step = goldenSection * prevStep
		}

		u := x + signOrOne(step)*math.Max(math.Abs(step), tol1)
		fu := f(u)
		evals++

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}

		mid = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(x) + opts.XTol/3
		tol2 = 2 * tol1
	}

	return Result{
		X:           x,
		Fun:         fx,
		Iterations:  iters,
		Evaluations: evals,
		Converged:   converged,
	}, nil
}

func signOrOne(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
