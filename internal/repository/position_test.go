package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type mockPoolsRepository struct {
	sqlError error
}

func (m mockPoolsRepository) GetPoolBySymbol(_ context.Context, symbol string) (poolRow, error) {
	if m.sqlError != nil {
		return poolRow{}, m.sqlError
	}
	return poolRow{
		Symbol:          symbol,
		ApyPercent:      decimal.NewFromFloat(8.5),
		LockupDays:      30,
		MinDeposit:      decimal.NewFromFloat(0.01),
		MaxDeposit:      decimal.NewFromInt(10),
		RiskTier:        "LOW",
		UtilizationRate: decimal.NewFromFloat(0.42),
	}, nil
}

type mockPositionsRepository struct {
	cashError error
	holdings  []holdingRow
	options   []optionRow
	liquidity []liquidityRow
}

func (m mockPositionsRepository) GetHoldings(_ context.Context, _ string) ([]holdingRow, error) {
	return m.holdings, nil
}

func (m mockPositionsRepository) GetOptionContracts(_ context.Context, _ string) ([]optionRow, error) {
	return m.options, nil
}

func (m mockPositionsRepository) GetOpenOptionContracts(_ context.Context) ([]optionRow, error) {
	return m.options, nil
}

func (m mockPositionsRepository) GetLiquidityPositions(_ context.Context, _ string) ([]liquidityRow, error) {
	return m.liquidity, nil
}

func (m mockPositionsRepository) GetCashBalance(_ context.Context, _ string) (decimal.Decimal, error) {
	if m.cashError != nil {
		return decimal.Decimal{}, m.cashError
	}
	return decimal.NewFromInt(25000), nil
}

func TestDatabase_GetPortfolio(t *testing.T) {
	curTime := time.UnixMilli(1)
	contractID := uuid.New()
	positionID := uuid.New()

	t.Run("should throw ErrAccountNotFound", func(t *testing.T) {
		db := &Database{positions: mockPositionsRepository{cashError: pgx.ErrNoRows}}
		_, err := db.GetPortfolio(context.Background(), "nobody", curTime)
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("GetPortfolio() error = %v, wantErr %v", err, ErrAccountNotFound)
		}
	})

	t.Run("should assemble full snapshot", func(t *testing.T) {
		db := &Database{
			assets: mockAssetsRepository{},
			pools:  mockPoolsRepository{},
			positions: mockPositionsRepository{
				holdings: []holdingRow{
					{Symbol: "BTC", Quantity: decimal.NewFromFloat(0.5), AverageCost: decimal.NewFromInt(88000)},
				},
				options: []optionRow{
					{
						ID:          contractID,
						Symbol:      "BTC",
						OptionType:  "CALL",
						Strike:      decimal.NewFromInt(92000),
						Expiration:  curTime.AddDate(0, 0, 14),
						Quantity:    2,
						PremiumPaid: decimal.NewFromInt(5100),
						TimeValue:   decimal.NewFromInt(420),
						State:       "OPEN",
						PurchasedAt: curTime,
					},
				},
				liquidity: []liquidityRow{
					{
						ID:          positionID,
						PoolSymbol:  "BTC",
						Principal:   decimal.NewFromFloat(0.5),
						Currency:    "BTC",
						DepositedAt: curTime,
						State:       "LOCKED",
					},
				},
			},
		}

		snapshot, err := db.GetPortfolio(context.Background(), "alice", curTime)
		if err != nil {
			t.Fatalf("GetPortfolio() unexpected error: %v", err)
		}
		if snapshot.Owner != "alice" {
			t.Errorf("GetPortfolio() owner = %v, want alice", snapshot.Owner)
		}
		if !snapshot.Cash.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("GetPortfolio() cash = %v, want 25000", snapshot.Cash)
		}
		if len(snapshot.Holdings) != 1 || !snapshot.Holdings[0].CurrentPrice.Equal(decimal.NewFromFloat(95847.32)) {
			t.Errorf("GetPortfolio() holdings = %+v, want BTC priced at latest spot", snapshot.Holdings)
		}
		if len(snapshot.Options) != 1 {
			t.Fatalf("GetPortfolio() options = %d, want 1", len(snapshot.Options))
		}
		option := snapshot.Options[0]
		if option.Contract.ID != contractID || option.Contract.OptionType != types.TypeCall {
			t.Errorf("GetPortfolio() contract = %+v, want converted call", option.Contract)
		}
		if !option.TimeValue.Equal(decimal.NewFromInt(420)) {
			t.Errorf("GetPortfolio() time value = %v, want 420", option.TimeValue)
		}
		if len(snapshot.Liquidity) != 1 {
			t.Fatalf("GetPortfolio() liquidity = %d, want 1", len(snapshot.Liquidity))
		}
		position := snapshot.Liquidity[0]
		if position.Pool.LockupDays != 30 || position.State != types.LiquidityStateLocked {
			t.Errorf("GetPortfolio() position = %+v, want 30 day locked pool", position)
		}
		if position.Principal.Currency != types.Currency("BTC") {
			t.Errorf("GetPortfolio() principal currency = %v, want BTC", position.Principal.Currency)
		}
	})
}

func TestDatabase_GetPoolBySymbol(t *testing.T) {
	t.Run("should throw ErrPoolNotFound", func(t *testing.T) {
		db := &Database{pools: mockPoolsRepository{sqlError: pgx.ErrNoRows}}
		_, err := db.GetPoolBySymbol(context.Background(), "DOGE")
		if !errors.Is(err, ErrPoolNotFound) {
			t.Errorf("GetPoolBySymbol() error = %v, wantErr %v", err, ErrPoolNotFound)
		}
	})

	t.Run("should join pool with asset snapshot", func(t *testing.T) {
		db := &Database{assets: mockAssetsRepository{}, pools: mockPoolsRepository{}}
		pool, err := db.GetPoolBySymbol(context.Background(), "BTC")
		if err != nil {
			t.Fatalf("GetPoolBySymbol() unexpected error: %v", err)
		}
		if !pool.Asset.SpotPrice.Equal(decimal.NewFromFloat(95847.32)) {
			t.Errorf("GetPoolBySymbol() spot = %v, want 95847.32", pool.Asset.SpotPrice)
		}
		if pool.RiskTier != types.RiskTierLow {
			t.Errorf("GetPoolBySymbol() tier = %v, want LOW", pool.RiskTier)
		}
	})
}

func TestDatabase_GetOpenOptionContracts(t *testing.T) {
	db := &Database{positions: mockPositionsRepository{
		options: []optionRow{
			{ID: uuid.New(), Symbol: "ETH", OptionType: "PUT", Strike: decimal.NewFromInt(3500),
				Quantity: 5, State: "OPEN"},
		},
	}}
	contracts, err := db.GetOpenOptionContracts(context.Background())
	if err != nil {
		t.Fatalf("GetOpenOptionContracts() unexpected error: %v", err)
	}
	if len(contracts) != 1 {
		t.Fatalf("GetOpenOptionContracts() contracts = %d, want 1", len(contracts))
	}
	if contracts[0].OptionType != types.TypePut || contracts[0].Quantity != 5 {
		t.Errorf("GetOpenOptionContracts() contract = %+v, want converted put", contracts[0])
	}
}
