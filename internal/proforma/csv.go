package proforma

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// WriteScheduleCSV writes the cash-flow schedule to path.
func WriteScheduleCSV(path string, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteSchedule(f, r); err != nil {
		return err
	}
	return f.Close()
}

// WriteSchedule writes the schedule as CSV. Money columns are rounded to cents.
func WriteSchedule(out io.Writer, r *Result) error {
	w := csv.NewWriter(out)

	header := []string{
		"year",
		"noi",
		"equity_noi",
		"exit_proceeds",
		"cash_flow",
		"cumulative_cash_flow",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range r.Schedule {
		rec := []string{
			strconv.Itoa(row.Year),
			fmtMoney(row.NOI),
			fmtMoney(row.EquityNOI),
			fmtMoney(row.ExitProceeds),
			fmtMoney(row.CashFlow),
			fmtMoney(row.CumulativeCashFlow),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtMoney(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}
