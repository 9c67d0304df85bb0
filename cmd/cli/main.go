package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"land-valuation/internal/config"
	"land-valuation/internal/logging"
	"land-valuation/internal/model"
	"land-valuation/internal/proforma"
	"land-valuation/internal/report"
	"land-valuation/internal/scenario"
	"land-valuation/internal/solver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"))

	var err error
	switch os.Args[1] {
	case "evaluate":
		err = cmdEvaluate(os.Args[2:])
	case "solve":
		err = cmdSolve(os.Args[2:])
	case "residual":
		err = cmdResidual(os.Args[2:])
	case "scenarios":
		err = cmdScenarios(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli evaluate  --config examples/config.yaml --land-cost 1500000 [--out results/schedule.csv]")
	fmt.Println("  cli solve     --config examples/config.yaml [--out results/schedule.csv]")
	fmt.Println("  cli residual  --config examples/config.yaml [--margin 0.15]")
	fmt.Println("  cli scenarios --config examples/scenarios.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --config the default assumptions are used")
	fmt.Println("  - solve exits 0 with an n/a land price when the target IRR is not reached")
}

// loadConfig returns the default configuration when path is empty.
func loadConfig(path string) (*config.Config, model.ProjectAssumptions, error) {
	c := &config.Config{Project: config.FromModel(model.DefaultAssumptions())}
	if path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return nil, model.ProjectAssumptions{}, err
		}
	}
	a, err := c.Project.ToModel()
	if err != nil {
		return nil, model.ProjectAssumptions{}, err
	}
	return c, a, nil
}

func writeCSV(path string, r *proforma.Result) error {
	if path == "" {
		return nil
	}
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := proforma.WriteScheduleCSV(path, r); err != nil {
		return err
	}
	fmt.Printf("\nWrote %d rows to %s\n", len(r.Schedule), path)
	return nil
}

func cmdEvaluate(args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	landCost := fs.Float64("land-cost", 0, "Land acquisition cost")
	outPath := fs.String("out", "", "Optional path to write the cash-flow schedule CSV")
	_ = fs.Parse(args)

	_, a, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	r, err := proforma.Evaluate(a, *landCost)
	if err != nil {
		return err
	}
	if err := report.WriteProForma(os.Stdout, r); err != nil {
		return err
	}
	return writeCSV(*outPath, r)
}

func cmdSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional path to write the cash-flow schedule CSV")
	_ = fs.Parse(args)

	c, a, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	res, err := solver.SolveLandPrice(a, c.Solver.ToOptions())
	if err != nil {
		return err
	}
	if err := report.WriteSolve(os.Stdout, res); err != nil {
		return err
	}
	return writeCSV(*outPath, res.ProForma)
}

func cmdResidual(args []string) error {
	fs := flag.NewFlagSet("residual", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	margin := fs.Float64("margin", 0, "Target profit margin on stabilized value (overrides config)")
	_ = fs.Parse(args)

	c, a, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	res, err := solver.ResidualLandValue(a, residualMargin(fs, *margin, c))
	if err != nil {
		return err
	}
	return report.WriteResidual(os.Stdout, res)
}

// residualMargin prefers an explicit --margin, zero included, over the config.
func residualMargin(fs *flag.FlagSet, margin float64, c *config.Config) float64 {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "margin" {
			set = true
		}
	})
	if set {
		return margin
	}
	return c.Residual.Margin()
}

func cmdScenarios(args []string) error {
	fs := flag.NewFlagSet("scenarios", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config with a scenarios list")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		return fmt.Errorf("--config is required")
	}
	c, a, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	sum, err := scenario.Solve(ctx, a, c.ScenarioList(), c.Solver.ToOptions())
	if err != nil {
		return err
	}
	return report.WriteScenarios(os.Stdout, sum)
}
