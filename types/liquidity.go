package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RiskTier string

type LiquidityState string

const (
	RiskTierLow    RiskTier = "LOW"
	RiskTierMedium RiskTier = "MEDIUM"
	RiskTierHigh   RiskTier = "HIGH"

	LiquidityStateDeposited  LiquidityState = "DEPOSITED"
	LiquidityStateLocked     LiquidityState = "LOCKED"
	LiquidityStateUnlockable LiquidityState = "UNLOCKABLE"
	LiquidityStateWithdrawn  LiquidityState = "WITHDRAWN"
)

// LiquidityPool describes one options-market liquidity pool. Deposit bounds
// are denominated in the pool asset's native units.
type LiquidityPool struct {
	Asset           Asset           `json:"asset"`
	ApyPercent      decimal.Decimal `json:"apyPercent"`
	LockupDays      int             `json:"lockupDays"`
	MinDeposit      decimal.Decimal `json:"minDeposit"`
	MaxDeposit      decimal.Decimal `json:"maxDeposit"`
	RiskTier        RiskTier        `json:"riskTier"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"` // percent, reported as-is
}

// LiquidityPosition is a deposit into a pool. Principal keeps the currency
// the depositor chose; accrual is reported in the same currency.
type LiquidityPosition struct {
	ID          uuid.UUID      `json:"id"`
	Pool        LiquidityPool  `json:"pool"`
	Principal   Money          `json:"principal"`
	DepositedAt time.Time      `json:"depositedAt"`
	State       LiquidityState `json:"state"`
}

func (p LiquidityPosition) LockupEnd() time.Time {
	return p.DepositedAt.AddDate(0, 0, p.Pool.LockupDays)
}

func (p LiquidityPosition) DaysRemaining(now time.Time) int {
	remaining := int(p.LockupEnd().Sub(now).Hours() / 24)
	if remaining < 0 {
		return 0
	}
	return remaining
}
