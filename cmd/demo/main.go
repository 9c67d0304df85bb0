package main

import (
	"flag"
	"fmt"
	"os"

	"land-valuation/internal/logging"
	"land-valuation/internal/model"
	"land-valuation/internal/proforma"
	"land-valuation/internal/report"
	"land-valuation/internal/solver"
)

// Demo:
// - Solve the default project for the land price that meets its target IRR
// - Print the pro forma at that price and the residual land value for comparison
func main() {
	margin := flag.Float64("margin", 0.15, "Target profit margin for the residual comparison")
	outCSV := flag.String("out", "", "Optional path to write the cash-flow schedule CSV")
	flag.Parse()

	logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"))

	a := model.DefaultAssumptions()
	res, err := solver.SolveLandPrice(a, solver.DefaultOptions())
	if err != nil {
		logging.Fatal("solve failed", "error", err)
	}
	if err := report.WriteSolve(os.Stdout, res); err != nil {
		logging.Fatal("write report", "error", err)
	}

	fmt.Println()
	residual, err := solver.ResidualLandValue(a, *margin)
	if err != nil {
		logging.Fatal("residual failed", "error", err)
	}
	if err := report.WriteResidual(os.Stdout, residual); err != nil {
		logging.Fatal("write report", "error", err)
	}

	if *outCSV != "" {
		if err := proforma.WriteScheduleCSV(*outCSV, res.ProForma); err != nil {
			logging.Fatal("write csv", "error", err)
		}
		fmt.Printf("\nWrote schedule to %s\n", *outCSV)
	}
}
