package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/decenzio/steptions-app/types"
	"github.com/jackc/pgx/v5"
)

// GetPoolBySymbol retrieves a liquidity pool together with its asset's
// latest market snapshot, which deposit-bound conversion needs.
func (db *Database) GetPoolBySymbol(ctx context.Context, symbol string) (*types.LiquidityPool, error) {
	row, err := db.pools.GetPoolBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("symbol %s %w", symbol, ErrPoolNotFound)
		}
		return nil, err
	}
	asset, err := db.GetAssetBySymbol(ctx, row.Symbol)
	if err != nil {
		return nil, err
	}
	return &types.LiquidityPool{
		Asset:           *asset,
		ApyPercent:      row.ApyPercent,
		LockupDays:      int(row.LockupDays),
		MinDeposit:      row.MinDeposit,
		MaxDeposit:      row.MaxDeposit,
		RiskTier:        types.RiskTier(row.RiskTier),
		UtilizationRate: row.UtilizationRate,
	}, nil
}
