package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is one market-data snapshot for an underlying: spot price and
// annualized volatility as of TakenAt. Snapshots are immutable; refreshes
// come from the external market-data source.
type Asset struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	SpotPrice  decimal.Decimal `json:"spotPrice"`
	Volatility decimal.Decimal `json:"volatility"`
	TakenAt    time.Time       `json:"takenAt"`
}

// AssetHolding is a spot position in an asset.
type AssetHolding struct {
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}
