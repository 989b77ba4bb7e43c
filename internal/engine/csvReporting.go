package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/decenzio/steptions-app/types"
)

// WriteValuationCSV writes the valuation to the configured report file.
// A no-op when no file path is configured.
func (e *Engine) WriteValuationCSV(valuation types.PortfolioValuation) error {
	if e.reportingConfig == nil || e.reportingConfig.filePath == "" {
		return nil
	}
	return e.WriteValuationCSVFile(e.reportingConfig.filePath, valuation)
}

// WriteValuationCSVFile writes one row per position to a CSV file at the
// given path.
func (e *Engine) WriteValuationCSVFile(path string, valuation types.PortfolioValuation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create valuation file: %w", err)
	}
	defer f.Close()

	return writeValuationCSV(f, valuation)
}

// writeValuationCSV writes the valuation to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func writeValuationCSV(w io.Writer, valuation types.PortfolioValuation) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"category",
		"symbol",
		"detail",
		"value_usd",
		"pnl_usd",
		"as_of", // RFC3339
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	asOf := valuation.Time.Format("2006-01-02T15:04:05Z07:00")

	for _, hv := range valuation.Holdings {
		row := []string{"asset", hv.Symbol, "", hv.Value.String(), hv.PnL.String(), asOf}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write holding row: %w", err)
		}
	}

	for _, ov := range valuation.Options {
		detail := string(ov.Contract.OptionType) + " " + ov.Contract.Strike.String() +
			" x" + strconv.FormatInt(ov.Contract.Quantity, 10)
		row := []string{"option", ov.Contract.Symbol, detail, ov.Value.String(), ov.PnL.String(), asOf}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write option row: %w", err)
		}
	}

	for _, lv := range valuation.Liquidity {
		detail := lv.Position.Principal.Amount.String() + " " + string(lv.Position.Principal.Currency)
		row := []string{"liquidity", lv.Position.Pool.Asset.Symbol, detail, lv.ValueUSD.String(), lv.AccruedToDate.Amount.String(), asOf}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write liquidity row: %w", err)
		}
	}

	row := []string{"cash", "USD", "", valuation.CashValue.String(), "0", asOf}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write cash row: %w", err)
	}

	return nil
}
