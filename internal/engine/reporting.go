package engine

import (
	"fmt"

	"github.com/decenzio/steptions-app/types"
)

// PrintValuation writes a human-readable valuation report to stdout.
func (e *Engine) PrintValuation(owner string, valuation types.PortfolioValuation) {
	name := "Portfolio Valuation"
	if e.reportingConfig != nil && e.reportingConfig.reportName != "" {
		name = e.reportingConfig.reportName
	}
	fmt.Printf("===== %s =====\n", name)
	fmt.Printf("Owner:                %s\n", owner)
	fmt.Printf("As Of:                %s\n", valuation.Time.Format("2006-01-02 15:04:05"))

	fmt.Println("\n-- Totals --")
	fmt.Printf("Total Balance:        %s\n", valuation.TotalBalance.StringFixed(2))
	fmt.Printf("Total P&L:            %s (%s%%)\n", valuation.TotalPnL.StringFixed(2), valuation.TotalPnLPercent.StringFixed(2))

	fmt.Println("\n-- Category Values --")
	fmt.Printf("Cash:                 %s\n", valuation.CashValue.StringFixed(2))
	fmt.Printf("Assets:               %s\n", valuation.AssetValue.StringFixed(2))
	fmt.Printf("Options:              %s\n", valuation.OptionValue.StringFixed(2))
	fmt.Printf("Liquidity:            %s\n", valuation.LiquidityValue.StringFixed(2))

	fmt.Println("\n-- Allocation --")
	fmt.Printf("Cash:                 %s%%\n", valuation.CashAllocation.StringFixed(1))
	fmt.Printf("Assets:               %s%%\n", valuation.AssetAllocation.StringFixed(1))
	fmt.Printf("Options:              %s%%\n", valuation.OptionAllocation.StringFixed(1))
	fmt.Printf("Liquidity:            %s%%\n", valuation.LiquidityAllocation.StringFixed(1))

	if e.reportingConfig != nil && e.reportingConfig.printPositions {
		e.printPositions(valuation)
	}
	fmt.Println("===============================")
}

func (e *Engine) printPositions(valuation types.PortfolioValuation) {
	if len(valuation.Holdings) > 0 {
		fmt.Println("\n-- Holdings --")
		for _, hv := range valuation.Holdings {
			fmt.Printf("%-8s value=%s pnl=%s (%s%%) alloc=%s%%\n",
				hv.Symbol, hv.Value.StringFixed(2), hv.PnL.StringFixed(2),
				hv.PnLPercent.StringFixed(2), hv.Allocation.StringFixed(1))
		}
	}
	if len(valuation.Options) > 0 {
		fmt.Println("\n-- Options --")
		for _, ov := range valuation.Options {
			fmt.Printf("%-8s %s strike=%s qty=%d expires=%dd value=%s pnl=%s\n",
				ov.Contract.Symbol, ov.Contract.OptionType, ov.Contract.Strike,
				ov.Contract.Quantity, ov.Contract.DaysToExpiry(valuation.Time),
				ov.Value.StringFixed(2), ov.PnL.StringFixed(2))
		}
	}
	if len(valuation.Liquidity) > 0 {
		fmt.Println("\n-- Liquidity --")
		for _, lv := range valuation.Liquidity {
			fmt.Printf("%-8s principal=%s %s accrued=%s days_left=%d value(usd)=%s\n",
				lv.Position.Pool.Asset.Symbol,
				lv.Position.Principal.Amount, lv.Position.Principal.Currency,
				lv.AccruedToDate.Amount, lv.Position.DaysRemaining(valuation.Time),
				lv.ValueUSD.StringFixed(2))
		}
	}
}
