package engine

import (
	"github.com/decenzio/steptions-app/types"
	"github.com/shopspring/decimal"
)

// Aggregate combines a snapshot's positions into a portfolio valuation.
// The snapshot is a caller-owned immutable copy; Aggregate never mutates it
// and holds no state between calls. All totals are USD.
func Aggregate(snapshot types.PortfolioSnapshot) types.PortfolioValuation {
	valuation := types.PortfolioValuation{
		Time:      snapshot.Time,
		CashValue: snapshot.Cash,
	}

	costBasis := snapshot.Cash

	for _, holding := range snapshot.Holdings {
		hv := valueHolding(holding)
		valuation.Holdings = append(valuation.Holdings, hv)
		valuation.AssetValue = valuation.AssetValue.Add(hv.Value)
		valuation.TotalPnL = valuation.TotalPnL.Add(hv.PnL)
		costBasis = costBasis.Add(holding.Quantity.Mul(holding.AverageCost))
	}

	for _, position := range snapshot.Options {
		ov := valueOption(position)
		valuation.Options = append(valuation.Options, ov)
		valuation.OptionValue = valuation.OptionValue.Add(ov.Value)
		valuation.TotalPnL = valuation.TotalPnL.Add(ov.PnL)
		premiumPaid := position.Contract.PremiumPaid.Mul(decimal.NewFromInt(position.Contract.Quantity))
		costBasis = costBasis.Add(premiumPaid)
	}

	for _, position := range snapshot.Liquidity {
		lv := valueLiquidity(position, snapshot)
		valuation.Liquidity = append(valuation.Liquidity, lv)
		valuation.LiquidityValue = valuation.LiquidityValue.Add(lv.ValueUSD)
		accruedUSD, err := lv.AccruedToDate.ToUSD(position.Pool.Asset.SpotPrice)
		if err == nil {
			valuation.TotalPnL = valuation.TotalPnL.Add(accruedUSD.Amount)
		}
		principalUSD, err := position.Principal.ToUSD(position.Pool.Asset.SpotPrice)
		if err == nil {
			costBasis = costBasis.Add(principalUSD.Amount)
		}
	}

	valuation.TotalBalance = snapshot.Cash.
		Add(valuation.AssetValue).
		Add(valuation.OptionValue).
		Add(valuation.LiquidityValue)

	valuation.TotalPnLPercent = percentOf(valuation.TotalPnL, costBasis)

	if valuation.TotalBalance.IsPositive() {
		valuation.CashAllocation = percentOf(valuation.CashValue, valuation.TotalBalance)
		valuation.AssetAllocation = percentOf(valuation.AssetValue, valuation.TotalBalance)
		valuation.OptionAllocation = percentOf(valuation.OptionValue, valuation.TotalBalance)
		valuation.LiquidityAllocation = percentOf(valuation.LiquidityValue, valuation.TotalBalance)
		for i := range valuation.Holdings {
			valuation.Holdings[i].Allocation = percentOf(valuation.Holdings[i].Value, valuation.TotalBalance)
		}
	}

	return valuation
}

func valueHolding(holding types.AssetHolding) types.HoldingValuation {
	value := holding.Quantity.Mul(holding.CurrentPrice)
	cost := holding.Quantity.Mul(holding.AverageCost)
	pnl := value.Sub(cost)
	return types.HoldingValuation{
		Symbol:     holding.Symbol,
		Value:      value,
		PnL:        pnl,
		PnLPercent: percentOf(pnl, cost),
	}
}

// valueOption prices an open position as intrinsic plus the externally
// quoted time value. Time value is a live market input, not a model output.
func valueOption(position types.OptionPosition) types.OptionValuation {
	contract := position.Contract
	qty := decimal.NewFromInt(contract.Quantity)

	intrinsic := IntrinsicPerContract(contract.OptionType, position.SpotPrice, contract.Strike)
	value := intrinsic.Add(position.TimeValue).Mul(qty)
	pnl := value.Sub(contract.PremiumPaid.Mul(qty))

	return types.OptionValuation{
		Contract: contract,
		Value:    value,
		PnL:      pnl,
	}
}

func valueLiquidity(position types.LiquidityPosition, snapshot types.PortfolioSnapshot) types.LiquidityValuation {
	accrued := AccruedToDate(position, snapshot.Time)
	value, _ := position.Principal.Add(accrued)

	// A degenerate spot price cannot convert native value to USD; report
	// zero rather than relabeling the native amount as USD.
	valueUSD := decimal.Zero
	if converted, err := value.ToUSD(position.Pool.Asset.SpotPrice); err == nil {
		valueUSD = converted.Amount
	}

	return types.LiquidityValuation{
		Position:      position,
		AccruedToDate: accrued,
		Value:         value,
		ValueUSD:      valueUSD,
	}
}

// percentOf guards the degenerate zero denominator by reporting 0% instead
// of failing. Ratio errors here are recovered locally, never surfaced.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
