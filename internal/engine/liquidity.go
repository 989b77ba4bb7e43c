package engine

import (
	"errors"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/shopspring/decimal"
)

var OutOfBoundsErr = errors.New("deposit outside pool min/max bounds")

var daysPerYear = decimal.NewFromInt(365)
var hundred = decimal.NewFromInt(100)

// ProjectedEarnings computes the simple pro-rata yield of a deposit over a
// lockup period. No compounding within the lockup; that is pool policy, not
// an approximation.
func ProjectedEarnings(principal types.Money, apyPercent decimal.Decimal, lockupDays int) types.Money {
	yearly := principal.Amount.Mul(apyPercent).Div(hundred)
	earnings := yearly.Mul(decimal.NewFromInt(int64(lockupDays))).Div(daysPerYear)
	return types.NewMoney(earnings.Round(8), principal.Currency)
}

// TotalAtLockupEnd is principal plus projected earnings, in the principal's
// currency.
func TotalAtLockupEnd(principal types.Money, apyPercent decimal.Decimal, lockupDays int) types.Money {
	earnings := ProjectedEarnings(principal, apyPercent, lockupDays)
	total, _ := principal.Add(earnings)
	return total
}

// ValidateDeposit checks the principal against the pool's deposit bounds.
// Bounds are native; a USD principal is converted to native units at the
// pool asset's spot price before comparison. Out-of-range deposits fail,
// they are never clamped.
func ValidateDeposit(pool types.LiquidityPool, principal types.Money) error {
	if principal.Currency != types.CurrencyUSD &&
		principal.Currency != types.NativeCurrency(pool.Asset.Symbol) {
		return types.ErrCurrencyMismatch
	}

	native, err := principal.ToNative(pool.Asset.Symbol, pool.Asset.SpotPrice)
	if err != nil {
		return InvalidInputErr
	}

	if native.Amount.LessThan(pool.MinDeposit) || native.Amount.GreaterThan(pool.MaxDeposit) {
		return OutOfBoundsErr
	}
	return nil
}

// AccruedToDate linearly accrues the projected earnings by the elapsed
// fraction of the lockup, clamped to [0, lockup].
func AccruedToDate(position types.LiquidityPosition, now time.Time) types.Money {
	projected := ProjectedEarnings(position.Principal, position.Pool.ApyPercent, position.Pool.LockupDays)
	if position.Pool.LockupDays <= 0 {
		return types.NewMoney(decimal.Zero, position.Principal.Currency)
	}

	elapsed := now.Sub(position.DepositedAt)
	lockup := time.Duration(position.Pool.LockupDays) * 24 * time.Hour
	switch {
	case elapsed <= 0:
		return types.NewMoney(decimal.Zero, position.Principal.Currency)
	case elapsed >= lockup:
		return projected
	}

	fraction := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(lockup)))
	accrued := projected.Mul(fraction)
	accrued.Amount = accrued.Amount.Round(8)
	return accrued
}

// DeriveLiquidityState derives the lifecycle state of a deposit at an
// instant. Deposited covers the deposit instant itself; the lockup clock
// starts strictly after it. Withdrawn is terminal and set by the caller,
// never derived.
func DeriveLiquidityState(position types.LiquidityPosition, now time.Time) types.LiquidityState {
	if position.State == types.LiquidityStateWithdrawn {
		return types.LiquidityStateWithdrawn
	}
	if !now.After(position.DepositedAt) {
		return types.LiquidityStateDeposited
	}
	if now.Before(position.LockupEnd()) {
		return types.LiquidityStateLocked
	}
	return types.LiquidityStateUnlockable
}
