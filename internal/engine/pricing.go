package engine

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/decenzio/steptions-app/types"
	"github.com/shopspring/decimal"
)

var InvalidInputErr = errors.New("spot, strike and volatility must be positive")
var InvalidExpirationErr = errors.New("expiration must be in the future")

const hoursPerYear = 24 * 365.25

type Moneyness struct {
	Label types.MoneynessLabel
	// DiffPercent is the magnitude of (strike-spot)/spot in percent.
	DiffPercent decimal.Decimal
}

type Quote struct {
	Premium           decimal.Decimal
	Moneyness         Moneyness
	TimeToExpiryYears decimal.Decimal
}

// Price quotes the premium for one contract and classifies its moneyness.
// Pure function over the snapshot; the market-spread multiplier and minimum
// premium floor from the config are applied on top of the Black-Scholes
// theoretical price.
func (cfg *PricingConfig) Price(
	asset types.Asset,
	strike decimal.Decimal,
	expiration time.Time,
	now time.Time,
	optionType types.OptionType,
) (Quote, error) {
	if !asset.SpotPrice.IsPositive() || !strike.IsPositive() || asset.Volatility.IsNegative() {
		return Quote{}, InvalidInputErr
	}
	if !expiration.After(now) {
		return Quote{}, InvalidExpirationErr
	}

	moneyness, err := ClassifyMoneyness(optionType, asset.SpotPrice, strike)
	if err != nil {
		return Quote{}, err
	}

	s, _ := asset.SpotPrice.Float64()
	k, _ := strike.Float64()
	sigma, _ := asset.Volatility.Float64()
	r, _ := cfg.RiskFreeRate.Float64()

	t := expiration.Sub(now).Hours() / hoursPerYear
	t = math.Max(t, minTimeToExpiryYears)

	var theoretical float64
	if sigma == 0 {
		// Zero volatility degenerates to discounted intrinsic value.
		theoretical = discountedIntrinsic(optionType, s, k, r, t)
	} else {
		sqrtT := math.Sqrt(t)
		d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
		d2 := d1 - sigma*sqrtT

		switch optionType {
		case types.TypeCall:
			theoretical = s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
		case types.TypePut:
			theoretical = k*math.Exp(-r*t)*normCDF(-d2) - s*normCDF(-d1)
		default:
			return Quote{}, InvalidInputErr
		}
	}

	premium := decimal.NewFromFloat(theoretical).Mul(cfg.SpreadMultiplier)
	floor := asset.SpotPrice.Mul(cfg.MinPremiumRatio)
	if premium.LessThan(floor) {
		premium = floor
	}

	return Quote{
		Premium:           premium.Round(8),
		Moneyness:         moneyness,
		TimeToExpiryYears: decimal.NewFromFloat(t),
	}, nil
}

// normCDF is the standard normal CDF via the error function. The exchange's
// earlier sign-based approximation misprices away from the money and must
// not come back.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func discountedIntrinsic(optionType types.OptionType, s, k, r, t float64) float64 {
	discounted := k * math.Exp(-r*t)
	switch optionType {
	case types.TypeCall:
		return math.Max(s-discounted, 0)
	default:
		return math.Max(discounted-s, 0)
	}
}

// ClassifyMoneyness labels a strike relative to spot. Strikes within the ATM
// band classify ATM regardless of option type; outside it the label mirrors
// between calls and puts.
func ClassifyMoneyness(optionType types.OptionType, spot, strike decimal.Decimal) (Moneyness, error) {
	if !spot.IsPositive() || !strike.IsPositive() {
		return Moneyness{}, InvalidInputErr
	}

	diffPercent := strike.Sub(spot).Div(spot).Mul(decimal.NewFromInt(100))
	magnitude := diffPercent.Abs()

	if magnitude.LessThan(decimal.NewFromFloat(atmBandPercent)) {
		return Moneyness{Label: types.MoneynessATM, DiffPercent: magnitude}, nil
	}

	strikeAbove := diffPercent.IsPositive()
	label := types.MoneynessITM
	switch optionType {
	case types.TypeCall:
		if strikeAbove {
			label = types.MoneynessOTM
		}
	case types.TypePut:
		if !strikeAbove {
			label = types.MoneynessOTM
		}
	default:
		return Moneyness{}, InvalidInputErr
	}
	return Moneyness{Label: label, DiffPercent: magnitude}, nil
}

// PriceOrder quotes a full order: premium, subtotal, platform fee and total
// cost for the requested quantity.
func (cfg *PricingConfig) PriceOrder(
	asset types.Asset,
	strike decimal.Decimal,
	expiration time.Time,
	now time.Time,
	optionType types.OptionType,
	quantity int64,
) (types.OptionOrder, error) {
	if quantity <= 0 {
		return types.OptionOrder{}, InvalidQuantityErr
	}
	quote, err := cfg.Price(asset, strike, expiration, now, optionType)
	if err != nil {
		return types.OptionOrder{}, err
	}

	subtotal := quote.Premium.Mul(decimal.NewFromInt(quantity))
	fee := subtotal.Mul(cfg.PlatformFeeRate)

	return types.OptionOrder{
		Symbol:     asset.Symbol,
		OptionType: optionType,
		Strike:     strike,
		Expiration: expiration,
		Quantity:   quantity,
		Premium:    quote.Premium,
		Subtotal:   subtotal,
		Fee:        fee,
		TotalCost:  subtotal.Add(fee),
		CreatedAt:  now,
	}, nil
}

// ExpirationLadder lists the tradable expiration dates from now: the next
// weeklyCount weekly dates plus the first Friday of each of the next
// monthlyCount months, sorted ascending.
func ExpirationLadder(now time.Time, weeklyCount, monthlyCount int) []time.Time {
	var dates []time.Time

	for i := 1; i <= weeklyCount; i++ {
		dates = append(dates, now.AddDate(0, 0, i*7))
	}

	for i := 1; i <= monthlyCount; i++ {
		first := time.Date(now.Year(), now.Month(), 1, now.Hour(), now.Minute(), now.Second(), 0, now.Location()).AddDate(0, i, 0)
		offset := (int(time.Friday) - int(first.Weekday()) + 7) % 7
		dates = append(dates, first.AddDate(0, 0, offset))
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
