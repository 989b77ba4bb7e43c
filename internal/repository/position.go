package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/jackc/pgx/v5"
)

// GetPortfolio assembles one owner's full snapshot: holdings priced at the
// latest spot, open option positions with their live time values, active
// liquidity positions, and available cash.
func (db *Database) GetPortfolio(ctx context.Context, owner string, now time.Time) (types.PortfolioSnapshot, error) {
	cash, err := db.positions.GetCashBalance(ctx, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.PortfolioSnapshot{}, fmt.Errorf("owner %s %w", owner, ErrAccountNotFound)
		}
		return types.PortfolioSnapshot{}, err
	}

	snapshot := types.PortfolioSnapshot{
		Owner: owner,
		Cash:  cash,
		Time:  now,
	}

	holdingRows, err := db.positions.GetHoldings(ctx, owner)
	if err != nil {
		return types.PortfolioSnapshot{}, err
	}
	for _, row := range holdingRows {
		asset, err := db.GetAssetBySymbol(ctx, row.Symbol)
		if err != nil {
			return types.PortfolioSnapshot{}, err
		}
		snapshot.Holdings = append(snapshot.Holdings, types.AssetHolding{
			Symbol:       row.Symbol,
			Quantity:     row.Quantity,
			AverageCost:  row.AverageCost,
			CurrentPrice: asset.SpotPrice,
		})
	}

	optionRows, err := db.positions.GetOptionContracts(ctx, owner)
	if err != nil {
		return types.PortfolioSnapshot{}, err
	}
	for _, row := range optionRows {
		asset, err := db.GetAssetBySymbol(ctx, row.Symbol)
		if err != nil {
			return types.PortfolioSnapshot{}, err
		}
		snapshot.Options = append(snapshot.Options, types.OptionPosition{
			Contract:  convertOptionRow(row),
			SpotPrice: asset.SpotPrice,
			TimeValue: row.TimeValue,
		})
	}

	liquidityRows, err := db.positions.GetLiquidityPositions(ctx, owner)
	if err != nil {
		return types.PortfolioSnapshot{}, err
	}
	for _, row := range liquidityRows {
		pool, err := db.GetPoolBySymbol(ctx, row.PoolSymbol)
		if err != nil {
			return types.PortfolioSnapshot{}, err
		}
		snapshot.Liquidity = append(snapshot.Liquidity, types.LiquidityPosition{
			ID:          row.ID,
			Pool:        *pool,
			Principal:   types.NewMoney(row.Principal, types.Currency(row.Currency)),
			DepositedAt: row.DepositedAt,
			State:       types.LiquidityState(row.State),
		})
	}

	return snapshot, nil
}

// GetOpenOptionContracts returns every non-terminal option contract across
// all owners, for the expiry settlement sweep.
func (db *Database) GetOpenOptionContracts(ctx context.Context) ([]types.OptionContract, error) {
	rows, err := db.positions.GetOpenOptionContracts(ctx)
	if err != nil {
		return nil, err
	}
	contracts := make([]types.OptionContract, len(rows))
	for i, row := range rows {
		contracts[i] = convertOptionRow(row)
	}
	return contracts, nil
}

func convertOptionRow(row optionRow) types.OptionContract {
	return types.OptionContract{
		ID:          row.ID,
		Symbol:      row.Symbol,
		OptionType:  types.OptionType(row.OptionType),
		Strike:      row.Strike,
		Expiration:  row.Expiration,
		Quantity:    row.Quantity,
		PremiumPaid: row.PremiumPaid,
		State:       types.OptionState(row.State),
		PurchasedAt: row.PurchasedAt,
	}
}
