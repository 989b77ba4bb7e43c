package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

var ContractNotFoundErr = errors.New("no open contract with that id")

// Engine wires the pure valuation functions to a data store. The store is
// read-only from the engine's point of view; settlement results are returned
// to the caller, never written back.
type Engine struct {
	store           dataStore
	pricingConfig   *PricingConfig
	reportingConfig *ReportingConfig
}

func NewEngine(store dataStore, pricing *PricingConfig, reporting *ReportingConfig) *Engine {
	if pricing == nil {
		pricing = NewPricingConfig()
	}
	return &Engine{
		store:           store,
		pricingConfig:   pricing,
		reportingConfig: reporting,
	}
}

// QuoteOption prices a prospective order against the latest market snapshot.
func (e *Engine) QuoteOption(
	ctx context.Context,
	symbol string,
	strike decimal.Decimal,
	expiration time.Time,
	optionType types.OptionType,
	quantity int64,
	now time.Time,
) (types.OptionOrder, error) {
	asset, err := e.store.GetAssetBySymbol(ctx, symbol)
	if err != nil {
		return types.OptionOrder{}, fmt.Errorf("load asset %s: %w", symbol, err)
	}
	return e.pricingConfig.PriceOrder(*asset, strike, expiration, now, optionType, quantity)
}

// ProjectDeposit validates a prospective deposit against its pool and
// projects the earnings over the full lockup.
func (e *Engine) ProjectDeposit(
	ctx context.Context,
	symbol string,
	principal types.Money,
) (types.Money, error) {
	pool, err := e.store.GetPoolBySymbol(ctx, symbol)
	if err != nil {
		return types.Money{}, fmt.Errorf("load pool %s: %w", symbol, err)
	}
	if err := ValidateDeposit(*pool, principal); err != nil {
		return types.Money{}, err
	}
	return ProjectedEarnings(principal, pool.ApyPercent, pool.LockupDays), nil
}

// ValuePortfolio loads an owner's snapshot and aggregates it.
func (e *Engine) ValuePortfolio(ctx context.Context, owner string, now time.Time) (types.PortfolioValuation, error) {
	snapshot, err := e.store.GetPortfolio(ctx, owner, now)
	if err != nil {
		return types.PortfolioValuation{}, fmt.Errorf("load portfolio for %s: %w", owner, err)
	}
	return Aggregate(snapshot), nil
}

// EstimateVolatilityFor recomputes realized volatility for a symbol from its
// daily close history over the lookback window.
func (e *Engine) EstimateVolatilityFor(ctx context.Context, symbol string, lookbackDays int, now time.Time) (decimal.Decimal, error) {
	start := now.AddDate(0, 0, -lookbackDays)
	candles, err := e.store.GetDailyCloses(ctx, symbol, start, now)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load closes for %s: %w", symbol, err)
	}
	closes := make([]decimal.Decimal, len(candles))
	for i, candle := range candles {
		closes[i] = candle.Close
	}
	return EstimateVolatility(closes, types.Day)
}

// ExerciseContract settles quantity contracts of an open position early, at
// the latest spot price for its underlying.
func (e *Engine) ExerciseContract(
	ctx context.Context,
	contractID uuid.UUID,
	quantity int64,
	now time.Time,
) (types.OptionContract, ExerciseResult, error) {
	contracts, err := e.store.GetOpenOptionContracts(ctx)
	if err != nil {
		return types.OptionContract{}, ExerciseResult{}, fmt.Errorf("load open contracts: %w", err)
	}
	for _, contract := range contracts {
		if contract.ID != contractID {
			continue
		}
		asset, err := e.store.GetAssetBySymbol(ctx, contract.Symbol)
		if err != nil {
			return types.OptionContract{}, ExerciseResult{}, fmt.Errorf("load asset %s: %w", contract.Symbol, err)
		}
		return Exercise(contract, asset.SpotPrice, quantity, now)
	}
	return types.OptionContract{}, ExerciseResult{}, ContractNotFoundErr
}

// Settlement is one contract's outcome from an expiry sweep.
type Settlement struct {
	Contract types.OptionContract
	Result   ExerciseResult
	Lapsed   bool
}

// SettleExpired sweeps every open contract and auto-settles the ones at or
// past expiration: in-the-money remainders at intrinsic value, the rest
// lapsing worthless. Non-expired contracts are skipped.
func (e *Engine) SettleExpired(ctx context.Context, now time.Time) ([]Settlement, error) {
	contracts, err := e.store.GetOpenOptionContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load open contracts: %w", err)
	}

	bar := initProgressBar(len(contracts))
	var settlements []Settlement
	for _, contract := range contracts {
		bar.Add(1)
		if !contract.IsExpired(now) {
			continue
		}
		asset, err := e.store.GetAssetBySymbol(ctx, contract.Symbol)
		if err != nil {
			return nil, fmt.Errorf("load asset %s: %w", contract.Symbol, err)
		}
		settled, result, err := SettleAtExpiry(contract, asset.SpotPrice, now)
		if err != nil {
			return nil, fmt.Errorf("settle contract %s: %w", contract.ID, err)
		}
		settlements = append(settlements, Settlement{
			Contract: settled,
			Result:   result,
			Lapsed:   settled.State == types.OptionStateExpired,
		})
	}
	return settlements, nil
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Settling expired contracts..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
