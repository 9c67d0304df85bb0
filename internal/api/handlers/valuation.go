package handlers

import (
	"log/slog"
	"net/http"

	"land-valuation/internal/api/models"
	"land-valuation/internal/cache"
	"land-valuation/internal/config"
	"land-valuation/internal/proforma"
	"land-valuation/internal/scenario"
	"land-valuation/internal/solver"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ValuationHandler handles pro forma, solve, residual and scenario requests
type ValuationHandler struct {
	projects *ProjectHandler
	solves   *cache.SolveCache
}

// NewValuationHandler creates a valuation handler resolving project ids through projects.
// solves may be nil to disable caching.
func NewValuationHandler(projects *ProjectHandler, solves *cache.SolveCache) *ValuationHandler {
	return &ValuationHandler{projects: projects, solves: solves}
}

// Evaluate handles POST /api/v1/evaluate
func (h *ValuationHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.projects.resolve(req.Project)
	if err != nil {
		writeError(c, err)
		return
	}
	r, err := proforma.Evaluate(a, *req.LandCost)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.EvaluateResponse{
		ID:          uuid.NewString(),
		Project:     a.Name,
		Assumptions: assumptionsMap(a),
		ProForma:    toProForma(r, req.IncludeSchedule),
	})
}

// Solve handles POST /api/v1/solve
func (h *ValuationHandler) Solve(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.projects.resolve(req.Project)
	if err != nil {
		writeError(c, err)
		return
	}
	opts := toSolverOptions(req.Solver)
	key := cache.Key(a, opts)
	res, cached := h.solves.Get(key)
	if !cached {
		var err error
		if res, err = solver.SolveLandPrice(a, opts); err != nil {
			writeError(c, err)
			return
		}
		h.solves.Set(key, res)
	}

	id := uuid.NewString()
	if !res.Converged {
		slog.Warn("land price did not converge", "id", id, "project", a.Name, "error", res.ConvergenceError())
	}
	c.JSON(http.StatusOK, models.SolveResponse{
		ID:             id,
		Project:        a.Name,
		Assumptions:    assumptionsMap(a),
		LandCost:       res.LandCost,
		TargetIRR:      res.TargetIRR,
		AchievedIRR:    res.AchievedIRR,
		ObjectiveError: res.ObjectiveError,
		Converged:      res.Converged,
		Boundary:       res.Boundary,
		LowerBound:     res.LowerBound,
		UpperBound:     res.UpperBound,
		Iterations:     res.Iterations,
		Evaluations:    res.Evaluations,
		Warning:        warning(res),
		Cached:         cached,
		ProForma:       toProForma(res.ProForma, req.IncludeSchedule),
	})
}

// Residual handles POST /api/v1/residual
func (h *ValuationHandler) Residual(c *gin.Context) {
	var req models.ResidualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.projects.resolve(req.Project)
	if err != nil {
		writeError(c, err)
		return
	}
	margin := config.DefaultTargetProfitMargin
	if req.TargetProfitMargin != nil {
		margin = *req.TargetProfitMargin
	}
	res, err := solver.ResidualLandValue(a, margin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ResidualResponse{
		ID:                    uuid.NewString(),
		Project:               a.Name,
		TargetProfitMargin:    res.TargetProfitMargin,
		StabilizedValue:       res.StabilizedValue,
		TargetTotalCost:       res.TargetTotalCost,
		TotalConstructionCost: res.TotalConstructionCost,
		ResidualLandValue:     res.ResidualLandValue,
		Feasible:              res.Feasible,
		ProForma:              toProForma(res.ProForma, false),
	})
}

// Scenarios handles POST /api/v1/scenarios
func (h *ValuationHandler) Scenarios(c *gin.Context) {
	var req models.ScenariosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.projects.resolve(req.Project)
	if err != nil {
		writeError(c, err)
		return
	}

	list := make([]scenario.Scenario, 0, len(req.Scenarios))
	for _, s := range req.Scenarios {
		list = append(list, scenario.Scenario{Name: s.Name, Probability: s.Probability, Overrides: s.Overrides})
	}
	sum, err := scenario.Solve(c.Request.Context(), a, list, toSolverOptions(req.Solver))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ScenariosResponse{
		ID:               uuid.NewString(),
		Project:          a.Name,
		Scenarios:        make([]models.ScenarioResult, 0, len(sum.Outcomes)),
		WeightedLandCost: sum.WeightedLandCost.InexactFloat64(),
		ExpectedIRR:      sum.ExpectedIRR,
		AllConverged:     sum.AllConverged,
	}
	for _, o := range sum.Outcomes {
		resp.Scenarios = append(resp.Scenarios, models.ScenarioResult{
			Name:        o.Scenario.Name,
			Probability: o.Scenario.Probability,
			LandCost:    o.Result.LandCost,
			AchievedIRR: o.Result.AchievedIRR,
			Converged:   o.Result.Converged,
			Boundary:    o.Result.Boundary,
			Warning:     warning(o.Result),
		})
	}
	for _, o := range scenario.RankByLandCost(sum.Outcomes) {
		resp.Ranking = append(resp.Ranking, o.Scenario.Name)
	}
	if !sum.AllConverged {
		resp.Warning = "weighted land cost includes best estimates from scenarios that did not converge"
	}
	c.JSON(http.StatusOK, resp)
}
