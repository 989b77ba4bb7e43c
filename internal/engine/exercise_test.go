package engine

import (
	"testing"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPutPosition(t *testing.T, now time.Time) types.OptionContract {
	t.Helper()
	contract := types.NewOptionContract(
		"ETH",
		types.TypePut,
		decimal.NewFromInt(3500),
		now.AddDate(0, 0, 9),
		5,
		decimal.NewFromFloat(89.25),
		now,
	)
	contract.State = types.OptionStateExercisable
	return contract
}

func TestExercisePut(t *testing.T) {
	now := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	spot := decimal.NewFromFloat(3421.67)
	contract := newPutPosition(t, now)

	updated, result, err := Exercise(contract, spot, 5, now)
	require.NoError(t, err)

	// (3500 - 3421.67) * 5
	assert.True(t, result.IntrinsicValue.Equal(decimal.NewFromFloat(391.65)), "intrinsic = %s", result.IntrinsicValue)
	assert.True(t, result.RequiredCost.IsZero(), "puts settle in cash with no outlay, got %s", result.RequiredCost)
	assert.True(t, result.NetProceeds.Equal(decimal.NewFromFloat(391.65)), "proceeds = %s", result.NetProceeds)

	assert.Equal(t, int64(0), updated.Quantity)
	assert.Equal(t, types.OptionStateExercised, updated.State)
}

func TestExerciseCall(t *testing.T) {
	now := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	spot := decimal.NewFromFloat(95847.32)
	contract := types.NewOptionContract(
		"BTC", types.TypeCall, decimal.NewFromInt(92000),
		now.AddDate(0, 0, 7), 2, decimal.NewFromFloat(1250.50), now,
	)
	contract.State = types.OptionStateExercisable

	updated, result, err := Exercise(contract, spot, 1, now)
	require.NoError(t, err)

	assert.True(t, result.RequiredCost.Equal(decimal.NewFromInt(92000)), "call exercise pays strike, got %s", result.RequiredCost)
	assert.True(t, result.NetProceeds.IsPositive(), "ITM call proceeds must be positive")
	assert.True(t, result.NetProceeds.Equal(decimal.NewFromFloat(3847.32)), "proceeds = %s", result.NetProceeds)

	// partial exercise keeps the position alive
	assert.Equal(t, int64(1), updated.Quantity)
	assert.Equal(t, types.OptionStateExercisable, updated.State)
}

func TestExerciseRejections(t *testing.T) {
	now := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	t.Run("out of the money call fails fast", func(t *testing.T) {
		contract := types.NewOptionContract(
			"CHEF", types.TypeCall, decimal.NewFromFloat(3.50),
			now.AddDate(0, 0, 24), 1000, decimal.NewFromFloat(0.15), now,
		)
		spot := decimal.NewFromFloat(2.89)

		_, _, err := Exercise(contract, spot, 1000, now)
		assert.ErrorIs(t, err, ZeroValueExerciseErr)
	})

	t.Run("at the money counts as worthless", func(t *testing.T) {
		contract := types.NewOptionContract(
			"BTC", types.TypeCall, decimal.NewFromInt(92000),
			now.AddDate(0, 0, 7), 1, decimal.NewFromInt(100), now,
		)
		_, _, err := Exercise(contract, decimal.NewFromInt(92000), 1, now)
		assert.ErrorIs(t, err, ZeroValueExerciseErr)
	})

	t.Run("quantity bounds", func(t *testing.T) {
		contract := newPutPosition(t, now)
		spot := decimal.NewFromFloat(3421.67)

		_, _, err := Exercise(contract, spot, 0, now)
		assert.ErrorIs(t, err, InvalidQuantityErr)
		_, _, err = Exercise(contract, spot, -1, now)
		assert.ErrorIs(t, err, InvalidQuantityErr)
		_, _, err = Exercise(contract, spot, 6, now)
		assert.ErrorIs(t, err, InvalidQuantityErr)
	})

	t.Run("terminal position", func(t *testing.T) {
		contract := newPutPosition(t, now)
		contract.State = types.OptionStateExercised
		_, _, err := Exercise(contract, decimal.NewFromFloat(3421.67), 5, now)
		assert.ErrorIs(t, err, NotExercisableErr)
	})

	t.Run("expired position", func(t *testing.T) {
		contract := newPutPosition(t, now)
		_, _, err := Exercise(contract, decimal.NewFromFloat(3421.67), 5, now.AddDate(0, 0, 10))
		assert.ErrorIs(t, err, NotExercisableErr)
	})
}

func TestSettleAtExpiry(t *testing.T) {
	now := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	t.Run("ITM remainder settles at intrinsic", func(t *testing.T) {
		contract := newPutPosition(t, now)
		atExpiry := contract.Expiration

		settled, result, err := SettleAtExpiry(contract, decimal.NewFromFloat(3421.67), atExpiry)
		require.NoError(t, err)
		assert.Equal(t, types.OptionStateExercised, settled.State)
		assert.Equal(t, int64(0), settled.Quantity)
		assert.True(t, result.NetProceeds.Equal(decimal.NewFromFloat(391.65)))
	})

	t.Run("OTM remainder lapses worthless", func(t *testing.T) {
		contract := newPutPosition(t, now)
		atExpiry := contract.Expiration

		settled, result, err := SettleAtExpiry(contract, decimal.NewFromInt(3600), atExpiry)
		require.NoError(t, err)
		assert.Equal(t, types.OptionStateExpired, settled.State)
		assert.Equal(t, int64(0), settled.Quantity)
		assert.True(t, result.NetProceeds.IsZero())
		assert.True(t, result.IntrinsicValue.IsZero())
	})

	t.Run("not yet expired", func(t *testing.T) {
		contract := newPutPosition(t, now)
		_, _, err := SettleAtExpiry(contract, decimal.NewFromFloat(3421.67), now)
		assert.ErrorIs(t, err, NotExercisableErr)
	})
}

func TestCanExercise(t *testing.T) {
	now := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	contract := newPutPosition(t, now)

	assert.True(t, CanExercise(contract, decimal.NewFromFloat(3421.67), now))
	assert.False(t, CanExercise(contract, decimal.NewFromInt(3600), now), "OTM is not exercisable")
	assert.False(t, CanExercise(contract, decimal.NewFromFloat(3421.67), now.AddDate(0, 0, 10)), "expired is not exercisable")

	contract.State = types.OptionStateExpired
	assert.False(t, CanExercise(contract, decimal.NewFromFloat(3421.67), now), "terminal is not exercisable")
}
