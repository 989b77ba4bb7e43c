package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type mockAssetsRepository struct {
	sqlError error
	closes   []candleRow
}

func TestDatabase_GetAssetBySymbol(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		want    *types.Asset
		pgxErr  error
		wantErr error
	}{
		{"should throw ErrAssetNotFound", "BTC", nil, pgx.ErrNoRows, ErrAssetNotFound},
		{"should return asset", "BTC", &types.Asset{Symbol: "BTC", Name: "Bitcoin"}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				assets: mockAssetsRepository{sqlError: tt.pgxErr},
			}
			got, err := db.GetAssetBySymbol(context.Background(), tt.symbol)
			if err != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetAssetBySymbol() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if got.Symbol != tt.want.Symbol {
				t.Errorf("GetAssetBySymbol() symbol = %v, want %v", got, tt.want)
			}
			if got.Name != tt.want.Name {
				t.Errorf("GetAssetBySymbol() name = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDatabase_GetDailyCloses(t *testing.T) {
	curTime := time.UnixMilli(1)

	t.Run("should throw ErrNoCandles on empty history", func(t *testing.T) {
		db := &Database{assets: mockAssetsRepository{}}
		_, err := db.GetDailyCloses(context.Background(), "BTC", curTime, curTime.AddDate(0, 0, 30))
		if !errors.Is(err, ErrNoCandles) {
			t.Errorf("GetDailyCloses() error = %v, wantErr %v", err, ErrNoCandles)
		}
	})

	t.Run("should convert rows to candles", func(t *testing.T) {
		rows := make([]candleRow, 3)
		ts := curTime
		for i := range rows {
			rows[i] = candleRow{
				Symbol:    "BTC",
				Close:     decimal.NewFromInt(95000 + int64(i)*1000),
				Timestamp: ts,
			}
			ts = ts.Add(types.IntervalToTime[types.Day])
		}

		db := &Database{assets: mockAssetsRepository{closes: rows}}
		candles, err := db.GetDailyCloses(context.Background(), "BTC", curTime, curTime.AddDate(0, 0, 30))
		if err != nil {
			t.Fatalf("GetDailyCloses() unexpected error: %v", err)
		}
		if len(candles) != 3 {
			t.Fatalf("GetDailyCloses() candles = %d, want 3", len(candles))
		}
		if candles[0].Interval != types.Day {
			t.Errorf("GetDailyCloses() interval = %v, want Day", candles[0].Interval)
		}
		if !candles[1].Close.Equal(decimal.NewFromInt(96000)) {
			t.Errorf("GetDailyCloses() close = %v, want 96000", candles[1].Close)
		}
		if !candles[2].Timestamp.Equal(curTime.Add(2 * types.IntervalToTime[types.Day])) {
			t.Errorf("GetDailyCloses() timestamp = %v, want two daily steps", candles[2].Timestamp)
		}
	})
}

func (m mockAssetsRepository) GetAssetBySymbol(_ context.Context, symbol string) (assetRow, error) {
	if m.sqlError != nil {
		return assetRow{}, m.sqlError
	}
	return assetRow{
		Symbol:     symbol,
		Name:       "Bitcoin",
		SpotPrice:  decimal.NewFromFloat(95847.32),
		Volatility: decimal.NewFromFloat(0.65),
		TakenAt:    time.UnixMilli(1),
	}, nil
}

func (m mockAssetsRepository) GetDailyCloses(_ context.Context, _ string, _, _ time.Time) ([]candleRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	return m.closes, nil
}
