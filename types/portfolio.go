package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSnapshot is the caller-supplied, immutable input to valuation:
// every position one owner holds at one instant, plus available cash (USD).
// The engine reads it and never mutates it.
type PortfolioSnapshot struct {
	Owner     string
	Holdings  []AssetHolding
	Options   []OptionPosition
	Liquidity []LiquidityPosition
	Cash      decimal.Decimal
	Time      time.Time
}

// OptionPosition pairs a contract with its live market inputs. TimeValue is
// an external market quote, not derived from the pricing model.
type OptionPosition struct {
	Contract  OptionContract
	SpotPrice decimal.Decimal
	TimeValue decimal.Decimal // per contract, USD
}

type HoldingValuation struct {
	Symbol     string
	Value      decimal.Decimal
	PnL        decimal.Decimal
	PnLPercent decimal.Decimal
	Allocation decimal.Decimal // percent of total balance
}

type OptionValuation struct {
	Contract OptionContract
	Value    decimal.Decimal
	PnL      decimal.Decimal
}

type LiquidityValuation struct {
	Position      LiquidityPosition
	AccruedToDate Money
	Value         Money           // principal + accrued, position currency
	ValueUSD      decimal.Decimal // converted at the pool asset's spot
}

// PortfolioValuation is owned by the snapshot it was derived from.
// All totals are USD.
type PortfolioValuation struct {
	Time      time.Time
	Holdings  []HoldingValuation
	Options   []OptionValuation
	Liquidity []LiquidityValuation

	CashValue       decimal.Decimal
	AssetValue      decimal.Decimal
	OptionValue     decimal.Decimal
	LiquidityValue  decimal.Decimal
	TotalBalance    decimal.Decimal
	TotalPnL        decimal.Decimal
	TotalPnLPercent decimal.Decimal

	// Percent of total balance per category; all zero when the balance is zero.
	CashAllocation      decimal.Decimal
	AssetAllocation     decimal.Decimal
	OptionAllocation    decimal.Decimal
	LiquidityAllocation decimal.Decimal
}
