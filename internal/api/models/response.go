package models

// ProFormaResponse is the pro forma at one land cost. IRR is null when the cash flows have none.
type ProFormaResponse struct {
	BuildableArea         float64  `json:"buildable_area"`
	UnitCount             int      `json:"unit_count"`
	HardCosts             float64  `json:"hard_costs"`
	SoftCosts             float64  `json:"soft_costs"`
	TotalConstructionCost float64  `json:"total_construction_cost"`
	LandCost              float64  `json:"land_cost"`
	TotalProjectCost      float64  `json:"total_project_cost"`
	GrossPotentialRent    float64  `json:"gross_potential_rent"`
	EffectiveGrossIncome  float64  `json:"effective_gross_income"`
	OperatingExpenses     float64  `json:"operating_expenses"`
	NOI                   float64  `json:"noi"`
	ExitNOI               float64  `json:"exit_noi"`
	ExitValue             float64  `json:"exit_value"`
	StabilizedValue       float64  `json:"stabilized_value"`
	EquityInvestment      float64  `json:"equity_investment"`
	IRR                   *float64 `json:"irr"`
	EquityMultiple        float64  `json:"equity_multiple"`

	CashFlows []float64     `json:"cash_flows"`
	Schedule  []ScheduleRow `json:"schedule,omitempty"`
}

// ScheduleRow is one year of the equity cash-flow schedule
type ScheduleRow struct {
	Year               int     `json:"year"`
	NOI                float64 `json:"noi"`
	EquityNOI          float64 `json:"equity_noi"`
	ExitProceeds       float64 `json:"exit_proceeds"`
	CashFlow           float64 `json:"cash_flow"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

// EvaluateResponse represents the response from POST /api/v1/evaluate
type EvaluateResponse struct {
	ID          string             `json:"id"`
	Project     string             `json:"project,omitempty"`
	Assumptions map[string]float64 `json:"assumptions"`
	ProForma    ProFormaResponse   `json:"pro_forma"`
}

// SolveResponse represents the response from POST /api/v1/solve.
// LandCost is the best estimate even when Converged is false; Warning then says why.
type SolveResponse struct {
	ID             string             `json:"id"`
	Project        string             `json:"project,omitempty"`
	Assumptions    map[string]float64 `json:"assumptions"`
	LandCost       float64            `json:"land_cost"`
	TargetIRR      float64            `json:"target_irr"`
	AchievedIRR    *float64           `json:"achieved_irr"`
	ObjectiveError float64            `json:"objective_error"`
	Converged      bool               `json:"converged"`
	Boundary       bool               `json:"boundary"`
	LowerBound     float64            `json:"lower_bound"`
	UpperBound     float64            `json:"upper_bound"`
	Iterations     int                `json:"iterations"`
	Evaluations    int                `json:"evaluations"`
	Warning        string             `json:"warning,omitempty"`
	Cached         bool               `json:"cached,omitempty"`
	ProForma       ProFormaResponse   `json:"pro_forma"`
}

// ResidualResponse represents the response from POST /api/v1/residual
type ResidualResponse struct {
	ID                    string           `json:"id"`
	Project               string           `json:"project,omitempty"`
	TargetProfitMargin    float64          `json:"target_profit_margin"`
	StabilizedValue       float64          `json:"stabilized_value"`
	TargetTotalCost       float64          `json:"target_total_cost"`
	TotalConstructionCost float64          `json:"total_construction_cost"`
	ResidualLandValue     float64          `json:"residual_land_value"`
	Feasible              bool             `json:"feasible"`
	ProForma              ProFormaResponse `json:"pro_forma"`
}

// ScenariosResponse represents the response from POST /api/v1/scenarios
type ScenariosResponse struct {
	ID               string           `json:"id"`
	Project          string           `json:"project,omitempty"`
	Scenarios        []ScenarioResult `json:"scenarios"`
	WeightedLandCost float64          `json:"weighted_land_cost"`
	ExpectedIRR      *float64         `json:"expected_irr"`
	AllConverged     bool             `json:"all_converged"`
	// Ranking lists scenario names by land cost, highest first.
	Ranking []string `json:"ranking"`
	Warning string   `json:"warning,omitempty"`
}

// ScenarioResult contains the solve for one scenario
type ScenarioResult struct {
	Name        string   `json:"name"`
	Probability float64  `json:"probability"`
	LandCost    float64  `json:"land_cost"`
	AchievedIRR *float64 `json:"achieved_irr"`
	Converged   bool     `json:"converged"`
	Boundary    bool     `json:"boundary"`
	Warning     string   `json:"warning,omitempty"`
}

// ProjectInfo represents information about a project preset
type ProjectInfo struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	File        string             `json:"file"`
	Assumptions map[string]float64 `json:"assumptions"`
}

// ParameterInfo describes one numeric assumption
type ParameterInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
