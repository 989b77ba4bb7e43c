package engine

import (
	"context"
	"time"

	"github.com/decenzio/steptions-app/types"
)

// dataStore is the read side the engine needs from the surrounding product:
// market snapshots, pool definitions, and the positions to value or settle.
// Persistence itself lives behind this seam and is not the engine's concern.
type dataStore interface {
	GetAssetBySymbol(ctx context.Context, symbol string) (*types.Asset, error)
	GetPoolBySymbol(ctx context.Context, symbol string) (*types.LiquidityPool, error)
	GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]types.Candle, error)
	GetPortfolio(ctx context.Context, owner string, now time.Time) (types.PortfolioSnapshot, error)
	GetOpenOptionContracts(ctx context.Context) ([]types.OptionContract, error)
}
