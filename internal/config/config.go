package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"land-valuation/internal/model"
	"land-valuation/internal/scenario"
	"land-valuation/internal/solver"

	"gopkg.in/yaml.v3"
)

// DefaultTargetProfitMargin is used by the residual calculation when the config leaves it unset.
const DefaultTargetProfitMargin = 0.15

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load project assumptions from a separate YAML (e.g. examples/projects/*.yaml).
	// If both ProjectFile and Project are provided, non-zero Project fields override ProjectFile.
	ProjectFile string           `yaml:"project_file"`
	Project     ProjectConfig    `yaml:"project"`
	Solver      SolverConfig     `yaml:"solver"`
	Residual    ResidualConfig   `yaml:"residual"`
	Scenarios   []ScenarioConfig `yaml:"scenarios"`
}

// ProjectConfig mirrors model.ProjectAssumptions with YAML tags.
// HoldPeriodYears is a float so that 7.5 is reported as invalid rather than failing to parse.
type ProjectConfig struct {
	Name                  string  `yaml:"name" json:"name"`
	LotSizeArea           float64 `yaml:"lot_size_area" json:"lot_size_area"`
	FloorAreaRatio        float64 `yaml:"floor_area_ratio" json:"floor_area_ratio"`
	UnitSizeArea          float64 `yaml:"unit_size_area" json:"unit_size_area"`
	MonthlyRentPerUnit    float64 `yaml:"monthly_rent_per_unit" json:"monthly_rent_per_unit"`
	VacancyRate           float64 `yaml:"vacancy_rate" json:"vacancy_rate"`
	OperatingExpenseRatio float64 `yaml:"operating_expense_ratio" json:"operating_expense_ratio"`
	HardCostPerArea       float64 `yaml:"hard_cost_per_area" json:"hard_cost_per_area"`
	SoftCostRatio         float64 `yaml:"soft_cost_ratio" json:"soft_cost_ratio"`
	GoingInCapRate        float64 `yaml:"going_in_cap_rate" json:"going_in_cap_rate"`
	ExitCapRate           float64 `yaml:"exit_cap_rate" json:"exit_cap_rate"`
	HoldPeriodYears       float64 `yaml:"hold_period_years" json:"hold_period_years"`
	AnnualRentGrowthRate  float64 `yaml:"annual_rent_growth_rate" json:"annual_rent_growth_rate"`
	EquityRatio           float64 `yaml:"equity_ratio" json:"equity_ratio"`
	TargetIRR             float64 `yaml:"target_irr" json:"target_irr"`
}

type SolverConfig struct {
	LowerBound    float64 `yaml:"lower_bound"`
	UpperBound    float64 `yaml:"upper_bound"`
	Tolerance     float64 `yaml:"tolerance"`
	XTol          float64 `yaml:"xtol"`
	MaxIterations int     `yaml:"max_iterations"`
}

type ResidualConfig struct {
	// nil when the config omits it; an explicit 0 is kept.
	TargetProfitMargin *float64 `yaml:"target_profit_margin"`
}

// Margin returns the configured margin, or DefaultTargetProfitMargin when unset.
func (r ResidualConfig) Margin() float64 {
	if r.TargetProfitMargin == nil {
		return DefaultTargetProfitMargin
	}
	return *r.TargetProfitMargin
}

type ScenarioConfig struct {
	Name        string             `yaml:"name"`
	Probability float64            `yaml:"probability"`
	Overrides   map[string]float64 `yaml:"overrides"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// The project starts from model.DefaultAssumptions, then project_file, then inline project fields.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	base := FromModel(model.DefaultAssumptions())
	if c.ProjectFile != "" {
		projectPath := c.ProjectFile
		if !filepath.IsAbs(projectPath) {
			// Relative to the config file first, then the working directory.
			cand := filepath.Join(filepath.Dir(path), projectPath)
			if _, err := os.Stat(cand); err == nil {
				projectPath = cand
			}
		}
		base, err = LoadProjectFile(projectPath)
		if err != nil {
			return nil, err
		}
	}
	c.Project = MergeProject(base, c.Project)
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	a, err := c.Project.ToModel()
	if err != nil {
		return fmt.Errorf("project config invalid: %w", err)
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("project config invalid: %w", err)
	}
	if len(c.Scenarios) > 0 {
		if err := scenario.Validate(c.ScenarioList()); err != nil {
			return err
		}
	}
	return nil
}

// ToModel converts to model assumptions. The result is not validated beyond the hold period.
func (p ProjectConfig) ToModel() (model.ProjectAssumptions, error) {
	hold, err := model.HoldPeriodFromFloat(p.HoldPeriodYears)
	if err != nil {
		return model.ProjectAssumptions{}, err
	}
	return model.ProjectAssumptions{
		Name:                  p.Name,
		LotSizeArea:           p.LotSizeArea,
		FloorAreaRatio:        p.FloorAreaRatio,
		UnitSizeArea:          p.UnitSizeArea,
		MonthlyRentPerUnit:    p.MonthlyRentPerUnit,
		VacancyRate:           p.VacancyRate,
		OperatingExpenseRatio: p.OperatingExpenseRatio,
		HardCostPerArea:       p.HardCostPerArea,
		SoftCostRatio:         p.SoftCostRatio,
		GoingInCapRate:        p.GoingInCapRate,
		ExitCapRate:           p.ExitCapRate,
		HoldPeriodYears:       hold,
		AnnualRentGrowthRate:  p.AnnualRentGrowthRate,
		EquityRatio:           p.EquityRatio,
		TargetIRR:             p.TargetIRR,
	}, nil
}

func FromModel(a model.ProjectAssumptions) ProjectConfig {
	return ProjectConfig{
		Name:                  a.Name,
		LotSizeArea:           a.LotSizeArea,
		FloorAreaRatio:        a.FloorAreaRatio,
		UnitSizeArea:          a.UnitSizeArea,
		MonthlyRentPerUnit:    a.MonthlyRentPerUnit,
		VacancyRate:           a.VacancyRate,
		OperatingExpenseRatio: a.OperatingExpenseRatio,
		HardCostPerArea:       a.HardCostPerArea,
		SoftCostRatio:         a.SoftCostRatio,
		GoingInCapRate:        a.GoingInCapRate,
		ExitCapRate:           a.ExitCapRate,
		HoldPeriodYears:       float64(a.HoldPeriodYears),
		AnnualRentGrowthRate:  a.AnnualRentGrowthRate,
		EquityRatio:           a.EquityRatio,
		TargetIRR:             a.TargetIRR,
	}
}

func (s SolverConfig) ToOptions() solver.Options {
	opts := solver.DefaultOptions()
	opts.LowerBound = s.LowerBound
	if s.UpperBound != 0 {
		opts.UpperBound = s.UpperBound
	}
	if s.Tolerance != 0 {
		opts.Tolerance = s.Tolerance
	}
	opts.XTol = s.XTol
	opts.MaxIterations = s.MaxIterations
	return opts
}

func (c *Config) ScenarioList() []scenario.Scenario {
	out := make([]scenario.Scenario, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		out = append(out, scenario.Scenario{
			Name:        s.Name,
			Probability: s.Probability,
			Overrides:   s.Overrides,
		})
	}
	return out
}

type projectFileWrapper struct {
	Project ProjectConfig `yaml:"project"`
}

// LoadProjectFile reads a preset. Fields the file omits keep their model.DefaultAssumptions value;
// fields it sets to zero stay zero.
func LoadProjectFile(path string) (ProjectConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, err
	}
	w := projectFileWrapper{Project: FromModel(model.DefaultAssumptions())}
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ProjectConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Project, nil
}

// MergeProject overlays non-zero fields from override onto base.
// An inline zero cannot override a preset; put zero-valued fields in the project file instead.
func MergeProject(base, override ProjectConfig) ProjectConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	overlay := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	overlay(&out.LotSizeArea, override.LotSizeArea)
	overlay(&out.FloorAreaRatio, override.FloorAreaRatio)
	overlay(&out.UnitSizeArea, override.UnitSizeArea)
	overlay(&out.MonthlyRentPerUnit, override.MonthlyRentPerUnit)
	overlay(&out.VacancyRate, override.VacancyRate)
	overlay(&out.OperatingExpenseRatio, override.OperatingExpenseRatio)
	overlay(&out.HardCostPerArea, override.HardCostPerArea)
	overlay(&out.SoftCostRatio, override.SoftCostRatio)
	overlay(&out.GoingInCapRate, override.GoingInCapRate)
	overlay(&out.ExitCapRate, override.ExitCapRate)
	overlay(&out.HoldPeriodYears, override.HoldPeriodYears)
	overlay(&out.AnnualRentGrowthRate, override.AnnualRentGrowthRate)
	overlay(&out.EquityRatio, override.EquityRatio)
	overlay(&out.TargetIRR, override.TargetIRR)
	return out
}
