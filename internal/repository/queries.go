package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Row types and hand-written queries. Kept as plain structs so the
// repository tests can stub the interfaces without a live database.

type assetRow struct {
	Symbol     string
	Name       string
	SpotPrice  decimal.Decimal
	Volatility decimal.Decimal
	TakenAt    time.Time
}

type candleRow struct {
	Symbol    string
	Close     decimal.Decimal
	Timestamp time.Time
}

type poolRow struct {
	Symbol          string
	ApyPercent      decimal.Decimal
	LockupDays      int32
	MinDeposit      decimal.Decimal
	MaxDeposit      decimal.Decimal
	RiskTier        string
	UtilizationRate decimal.Decimal
}

type holdingRow struct {
	Symbol      string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
}

type optionRow struct {
	ID          uuid.UUID
	Symbol      string
	OptionType  string
	Strike      decimal.Decimal
	Expiration  time.Time
	Quantity    int64
	PremiumPaid decimal.Decimal
	TimeValue   decimal.Decimal
	State       string
	PurchasedAt time.Time
}

type liquidityRow struct {
	ID          uuid.UUID
	PoolSymbol  string
	Principal   decimal.Decimal
	Currency    string
	DepositedAt time.Time
	State       string
}

type queries struct {
	conn *pgxpool.Pool
}

func newQueries(conn *pgxpool.Pool) *queries {
	return &queries{conn: conn}
}

func (q *queries) GetAssetBySymbol(ctx context.Context, symbol string) (assetRow, error) {
	const sql = `SELECT symbol, name, spot_price, volatility, taken_at
		FROM market_snapshots WHERE symbol = $1
		ORDER BY taken_at DESC LIMIT 1`
	var row assetRow
	err := q.conn.QueryRow(ctx, sql, symbol).
		Scan(&row.Symbol, &row.Name, &row.SpotPrice, &row.Volatility, &row.TakenAt)
	return row, err
}

func (q *queries) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]candleRow, error) {
	const sql = `SELECT symbol, close, bucket
		FROM daily_candles WHERE symbol = $1 AND bucket BETWEEN $2 AND $3
		ORDER BY bucket`
	rows, err := q.conn.Query(ctx, sql, symbol, start, end)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (candleRow, error) {
		var c candleRow
		err := row.Scan(&c.Symbol, &c.Close, &c.Timestamp)
		return c, err
	})
}

func (q *queries) GetPoolBySymbol(ctx context.Context, symbol string) (poolRow, error) {
	const sql = `SELECT symbol, apy_percent, lockup_days, min_deposit, max_deposit, risk_tier, utilization_rate
		FROM liquidity_pools WHERE symbol = $1`
	var row poolRow
	err := q.conn.QueryRow(ctx, sql, symbol).
		Scan(&row.Symbol, &row.ApyPercent, &row.LockupDays, &row.MinDeposit,
			&row.MaxDeposit, &row.RiskTier, &row.UtilizationRate)
	return row, err
}

func (q *queries) GetHoldings(ctx context.Context, owner string) ([]holdingRow, error) {
	const sql = `SELECT symbol, quantity, average_cost
		FROM asset_holdings WHERE owner = $1`
	rows, err := q.conn.Query(ctx, sql, owner)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (holdingRow, error) {
		var h holdingRow
		err := row.Scan(&h.Symbol, &h.Quantity, &h.AverageCost)
		return h, err
	})
}

func (q *queries) GetOptionContracts(ctx context.Context, owner string) ([]optionRow, error) {
	const sql = `SELECT id, symbol, option_type, strike, expiration, quantity,
			premium_paid, time_value, state, purchased_at
		FROM option_positions WHERE owner = $1 AND state IN ('OPEN', 'EXERCISABLE')`
	rows, err := q.conn.Query(ctx, sql, owner)
	if err != nil {
		return nil, err
	}
	return collectOptionRows(rows)
}

func (q *queries) GetOpenOptionContracts(ctx context.Context) ([]optionRow, error) {
	const sql = `SELECT id, symbol, option_type, strike, expiration, quantity,
			premium_paid, time_value, state, purchased_at
		FROM option_positions WHERE state IN ('OPEN', 'EXERCISABLE')`
	rows, err := q.conn.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return collectOptionRows(rows)
}

func collectOptionRows(rows pgx.Rows) ([]optionRow, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (optionRow, error) {
		var o optionRow
		err := row.Scan(&o.ID, &o.Symbol, &o.OptionType, &o.Strike, &o.Expiration,
			&o.Quantity, &o.PremiumPaid, &o.TimeValue, &o.State, &o.PurchasedAt)
		return o, err
	})
}

func (q *queries) GetLiquidityPositions(ctx context.Context, owner string) ([]liquidityRow, error) {
	const sql = `SELECT id, pool_symbol, principal, currency, deposited_at, state
		FROM liquidity_positions WHERE owner = $1 AND state <> 'WITHDRAWN'`
	rows, err := q.conn.Query(ctx, sql, owner)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (liquidityRow, error) {
		var l liquidityRow
		err := row.Scan(&l.ID, &l.PoolSymbol, &l.Principal, &l.Currency, &l.DepositedAt, &l.State)
		return l, err
	})
}

func (q *queries) GetCashBalance(ctx context.Context, owner string) (decimal.Decimal, error) {
	const sql = `SELECT cash_balance FROM accounts WHERE owner = $1`
	var balance decimal.Decimal
	err := q.conn.QueryRow(ctx, sql, owner).Scan(&balance)
	return balance, err
}
