package engine

import (
	"errors"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/shopspring/decimal"
)

var NotExercisableErr = errors.New("position is not exercisable")
var InvalidQuantityErr = errors.New("requested quantity must be positive and within held quantity")
var ZeroValueExerciseErr = errors.New("refusing to exercise an out-of-the-money contract")

// ExerciseResult is the cash economics of exercising requestedQuantity
// contracts at the given spot. All amounts are USD.
type ExerciseResult struct {
	Quantity       int64
	IntrinsicValue decimal.Decimal
	RequiredCost   decimal.Decimal
	NetProceeds    decimal.Decimal
}

// IntrinsicPerContract is the immediate exercise value of one contract.
func IntrinsicPerContract(optionType types.OptionType, spot, strike decimal.Decimal) decimal.Decimal {
	var diff decimal.Decimal
	switch optionType {
	case types.TypeCall:
		diff = spot.Sub(strike)
	default:
		diff = strike.Sub(spot)
	}
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

// CanExercise reports whether a position is eligible for early exercise:
// not terminal, not expired, and in the money.
func CanExercise(contract types.OptionContract, spot decimal.Decimal, now time.Time) bool {
	if contract.IsTerminal() || contract.IsExpired(now) {
		return false
	}
	return IntrinsicPerContract(contract.OptionType, spot, contract.Strike).IsPositive()
}

// Exercise settles requestedQuantity contracts early and returns the updated
// position alongside the cash result. A call holder pays strike per contract
// to take delivery; a put settles in cash with no outlay. Worthless exercise
// is always rejected rather than executed at a loss.
func Exercise(
	contract types.OptionContract,
	spot decimal.Decimal,
	requestedQuantity int64,
	now time.Time,
) (types.OptionContract, ExerciseResult, error) {
	if requestedQuantity <= 0 || requestedQuantity > contract.Quantity {
		return contract, ExerciseResult{}, InvalidQuantityErr
	}
	if !CanExercise(contract, spot, now) {
		intrinsic := IntrinsicPerContract(contract.OptionType, spot, contract.Strike)
		if !contract.IsTerminal() && !contract.IsExpired(now) && intrinsic.IsZero() {
			return contract, ExerciseResult{}, ZeroValueExerciseErr
		}
		return contract, ExerciseResult{}, NotExercisableErr
	}

	result := settle(contract, spot, requestedQuantity)

	contract.Quantity -= requestedQuantity
	if contract.Quantity == 0 {
		contract.State = types.OptionStateExercised
	} else {
		contract.State = types.OptionStateExercisable
	}
	return contract, result, nil
}

// SettleAtExpiry settles whatever quantity remains at the expiration
// instant. In-the-money remainders settle automatically at intrinsic value;
// out-of-the-money remainders lapse worthless.
func SettleAtExpiry(
	contract types.OptionContract,
	spot decimal.Decimal,
	now time.Time,
) (types.OptionContract, ExerciseResult, error) {
	if !contract.IsExpired(now) {
		return contract, ExerciseResult{}, NotExercisableErr
	}
	if contract.IsTerminal() {
		return contract, ExerciseResult{}, NotExercisableErr
	}

	intrinsic := IntrinsicPerContract(contract.OptionType, spot, contract.Strike)
	if intrinsic.IsZero() {
		contract.Quantity = 0
		contract.State = types.OptionStateExpired
		return contract, ExerciseResult{}, nil
	}

	result := settle(contract, spot, contract.Quantity)
	contract.Quantity = 0
	contract.State = types.OptionStateExercised
	return contract, result, nil
}

func settle(contract types.OptionContract, spot decimal.Decimal, quantity int64) ExerciseResult {
	qty := decimal.NewFromInt(quantity)
	intrinsic := IntrinsicPerContract(contract.OptionType, spot, contract.Strike).Mul(qty)

	requiredCost := decimal.Zero
	var netProceeds decimal.Decimal
	if contract.OptionType == types.TypeCall {
		requiredCost = contract.Strike.Mul(qty)
		netProceeds = spot.Sub(contract.Strike).Mul(qty)
	} else {
		netProceeds = contract.Strike.Sub(spot).Mul(qty)
	}

	return ExerciseResult{
		Quantity:       quantity,
		IntrinsicValue: intrinsic,
		RequiredCost:   requiredCost,
		NetProceeds:    netProceeds,
	}
}
