package types

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrCurrencyMismatch = errors.New("currency mismatch")
var ErrNonPositivePrice = errors.New("spot price must be positive for conversion")

// Currency is the denomination tag carried with every monetary amount.
// It is either CurrencyUSD or an asset-native symbol ("BTC", "ETH", ...).
// The engine never infers denomination from context.
type Currency string

const CurrencyUSD Currency = "USD"

func NativeCurrency(symbol string) Currency {
	return Currency(symbol)
}

// Money is an amount tagged with its denomination.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: CurrencyUSD}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// ToUSD converts a native-denominated amount using the given spot price.
// Already-USD amounts pass through unchanged.
func (m Money) ToUSD(spotPrice decimal.Decimal) (Money, error) {
	if m.Currency == CurrencyUSD {
		return m, nil
	}
	if !spotPrice.IsPositive() {
		return Money{}, ErrNonPositivePrice
	}
	return Money{Amount: m.Amount.Mul(spotPrice), Currency: CurrencyUSD}, nil
}

// ToNative converts a USD amount into asset-native units at the given spot
// price. Already-native amounts pass through unchanged.
func (m Money) ToNative(symbol string, spotPrice decimal.Decimal) (Money, error) {
	if m.Currency != CurrencyUSD {
		return m, nil
	}
	if !spotPrice.IsPositive() {
		return Money{}, ErrNonPositivePrice
	}
	return Money{Amount: m.Amount.Div(spotPrice), Currency: NativeCurrency(symbol)}, nil
}
