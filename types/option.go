package types

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionContract is an American-style option position held by an account.
// All prices are USD per unit of the underlying.
type OptionContract struct {
	ID          uuid.UUID       `json:"id"`
	Symbol      string          `json:"symbol"`
	OptionType  OptionType      `json:"optionType"`
	Strike      decimal.Decimal `json:"strike"`
	Expiration  time.Time       `json:"expiration"`
	Quantity    int64           `json:"quantity"`
	PremiumPaid decimal.Decimal `json:"premiumPaid"` // per contract
	State       OptionState     `json:"state"`
	PurchasedAt time.Time       `json:"purchasedAt"`
}

func NewOptionContract(
	symbol string,
	optionType OptionType,
	strike decimal.Decimal,
	expiration time.Time,
	quantity int64,
	premiumPaid decimal.Decimal,
	purchasedAt time.Time,
) OptionContract {
	return OptionContract{
		ID:          uuid.New(),
		Symbol:      symbol,
		OptionType:  optionType,
		Strike:      strike,
		Expiration:  expiration,
		Quantity:    quantity,
		PremiumPaid: premiumPaid,
		State:       OptionStateOpen,
		PurchasedAt: purchasedAt,
	}
}

// DaysToExpiry rounds partial days up, matching how expiry is quoted to users.
func (o OptionContract) DaysToExpiry(now time.Time) int {
	if !o.Expiration.After(now) {
		return 0
	}
	return int(math.Ceil(o.Expiration.Sub(now).Hours() / 24))
}

func (o OptionContract) IsExpired(now time.Time) bool {
	return !now.Before(o.Expiration)
}

func (o OptionContract) IsTerminal() bool {
	return o.State == OptionStateExercised || o.State == OptionStateExpired
}
