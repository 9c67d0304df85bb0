// Package scenario solves a probability-weighted set of project variants.
//
// Each scenario is an independent SolveLandPrice call on the base assumptions with a few
// fields overridden; the weighting happens after all solves return.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"land-valuation/internal/model"
	"land-valuation/internal/solver"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const probabilitySumTolerance = 1e-6

// ErrInvalidScenarios marks a malformed scenario set (probabilities, empty set).
var ErrInvalidScenarios = errors.New("invalid scenarios")

// Scenario is one weighted variant of the base assumptions.
type Scenario struct {
	Name        string
	Probability float64
	// Overrides replaces base fields by name (see model.Fields); zero is a valid value.
	Overrides map[string]float64
}

// Outcome pairs a scenario with its solve.
type Outcome struct {
	Scenario    Scenario
	Assumptions model.ProjectAssumptions
	Result      *solver.Result
}

// Summary aggregates a solved scenario set. Outcomes keep the input order.
type Summary struct {
	Outcomes []Outcome
	// WeightedLandCost is sum(probability * land cost), rounded to cents.
	WeightedLandCost decimal.Decimal
	// ExpectedIRR is sum(probability * achieved IRR); nil when any scenario has no IRR.
	ExpectedIRR *float64
	// AllConverged is false when any land cost in the weighting is a best estimate only.
	AllConverged bool
}

// Validate checks names, probability ranges and that probabilities sum to 1.
func Validate(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("%w: at least one scenario is required", ErrInvalidScenarios)
	}
	sum := 0.0
	for i, s := range scenarios {
		p := s.Probability
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: scenario %d (%s): probability must be in [0, 1], got %v",
				ErrInvalidScenarios, i, s.Name, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > probabilitySumTolerance {
		return fmt.Errorf("%w: probabilities sum to %.6f, want 1", ErrInvalidScenarios, sum)
	}
	return nil
}

// Solve runs every scenario in parallel, bounded by GOMAXPROCS.
// Any invalid scenario fails the whole set; cancelling ctx stops scenarios not yet started.
func Solve(ctx context.Context, base model.ProjectAssumptions, scenarios []Scenario, opts solver.Options) (*Summary, error) {
	if err := Validate(scenarios); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, s := range scenarios {
		i, s := i, s
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := base.WithOverrides(s.Overrides)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			res, err := solver.SolveLandPrice(a, opts)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			outcomes[i] = Outcome{Scenario: s, Assumptions: a, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(outcomes), nil
}

func summarize(outcomes []Outcome) *Summary {
	total := decimal.Zero
	expected, irrDefined := 0.0, true
	allConverged := true
	for _, o := range outcomes {
		p := decimal.NewFromFloat(o.Scenario.Probability)
		total = total.Add(p.Mul(decimal.NewFromFloat(o.Result.LandCost)))
		if o.Result.AchievedIRR == nil {
			irrDefined = false
		} else {
			expected += o.Scenario.Probability * *o.Result.AchievedIRR
		}
		if !o.Result.Converged {
			allConverged = false
		}
	}
	sum := &Summary{
		Outcomes:         outcomes,
		WeightedLandCost: total.Round(2),
		AllConverged:     allConverged,
	}
	if irrDefined {
		sum.ExpectedIRR = &expected
	}
	return sum
}

// RankByLandCost returns outcomes sorted by land cost, highest first. The input is not modified.
func RankByLandCost(outcomes []Outcome) []Outcome {
	out := make([]Outcome, len(outcomes))
	copy(out, outcomes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.LandCost > out[j].Result.LandCost
	})
	return out
}
