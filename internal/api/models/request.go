package models

// ProjectInput selects the assumptions a request runs on: the defaults, or a preset from
// GET /api/v1/projects, with individual fields replaced by name. A zero override applies.
type ProjectInput struct {
	ProjectID   string             `json:"project_id,omitempty"`
	Name        string             `json:"name,omitempty"`
	Assumptions map[string]float64 `json:"assumptions,omitempty"`
}

// SolverOptions bounds the land price search. Omitted fields take the solver defaults.
type SolverOptions struct {
	LowerBound    float64 `json:"lower_bound,omitempty"`
	UpperBound    float64 `json:"upper_bound,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

// EvaluateRequest represents the request body for POST /api/v1/evaluate
type EvaluateRequest struct {
	Project         ProjectInput `json:"project"`
	LandCost        *float64     `json:"land_cost" binding:"required"`
	IncludeSchedule bool         `json:"include_schedule,omitempty"`
}

// SolveRequest represents the request body for POST /api/v1/solve
type SolveRequest struct {
	Project         ProjectInput   `json:"project"`
	Solver          *SolverOptions `json:"solver,omitempty"`
	IncludeSchedule bool           `json:"include_schedule,omitempty"`
}

// ResidualRequest represents the request body for POST /api/v1/residual
type ResidualRequest struct {
	Project            ProjectInput `json:"project"`
	TargetProfitMargin *float64     `json:"target_profit_margin,omitempty"` // default 0.15
}

// ScenariosRequest represents the request body for POST /api/v1/scenarios
type ScenariosRequest struct {
	Project   ProjectInput    `json:"project"`
	Solver    *SolverOptions  `json:"solver,omitempty"`
	Scenarios []ScenarioInput `json:"scenarios"`
}

// ScenarioInput is one weighted variant of the request's project.
type ScenarioInput struct {
	Name        string             `json:"name"`
	Probability float64            `json:"probability"`
	Overrides   map[string]float64 `json:"overrides,omitempty"`
}
