package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/jackc/pgx/v5"
)

// GetAssetBySymbol retrieves the latest market snapshot for a symbol.
func (db *Database) GetAssetBySymbol(ctx context.Context, symbol string) (*types.Asset, error) {
	row, err := db.assets.GetAssetBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("symbol %s %w", symbol, ErrAssetNotFound)
		}
		return nil, err
	}
	return &types.Asset{
		Symbol:     row.Symbol,
		Name:       row.Name,
		SpotPrice:  row.SpotPrice,
		Volatility: row.Volatility,
		TakenAt:    row.TakenAt,
	}, nil
}

// GetDailyCloses returns the daily close history for a symbol, oldest first.
func (db *Database) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]types.Candle, error) {
	rows, err := db.assets.GetDailyCloses(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoCandles
	}
	candles := make([]types.Candle, len(rows))
	for i, row := range rows {
		candles[i] = types.Candle{
			Symbol:    row.Symbol,
			Close:     row.Close,
			Interval:  types.Day,
			Timestamp: row.Timestamp,
		}
	}
	return candles, nil
}
