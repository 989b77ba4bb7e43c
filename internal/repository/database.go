package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrAssetNotFound   = errors.New("asset not found in datasource")
	ErrPoolNotFound    = errors.New("liquidity pool not found in datasource")
	ErrAccountNotFound = errors.New("account not found in datasource")
	ErrNoCandles       = errors.New("no candles found in datasource")
)

type assetsRepository interface {
	GetAssetBySymbol(ctx context.Context, symbol string) (assetRow, error)
	GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]candleRow, error)
}

type poolsRepository interface {
	GetPoolBySymbol(ctx context.Context, symbol string) (poolRow, error)
}

type positionsRepository interface {
	GetHoldings(ctx context.Context, owner string) ([]holdingRow, error)
	GetOptionContracts(ctx context.Context, owner string) ([]optionRow, error)
	GetOpenOptionContracts(ctx context.Context) ([]optionRow, error)
	GetLiquidityPositions(ctx context.Context, owner string) ([]liquidityRow, error)
	GetCashBalance(ctx context.Context, owner string) (decimal.Decimal, error)
}

// Database holds the connection pool and the per-entity query sets.
type Database struct {
	assets    assetsRepository
	pools     poolsRepository
	positions positionsRepository
	conn      *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	queries := newQueries(conn)
	return Database{
		assets:    queries,
		pools:     queries,
		positions: queries,
		conn:      conn,
	}, nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
