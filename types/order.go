package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionOrder is a priced order for a new option contract, as shown to the
// buyer before placement. All amounts are USD.
type OptionOrder struct {
	Symbol     string
	OptionType OptionType
	Strike     decimal.Decimal
	Expiration time.Time
	Quantity   int64
	Premium    decimal.Decimal // per contract
	Subtotal   decimal.Decimal
	Fee        decimal.Decimal
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
}
