package engine

import (
	"fmt"
	"math"

	"github.com/decenzio/steptions-app/types"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// EstimateVolatility annualizes the sample standard deviation of log returns
// over a close-price history. This is the refresh math behind the Volatility
// field on asset snapshots; live snapshots may instead carry an implied
// figure from the market-data source.
func EstimateVolatility(closes []decimal.Decimal, interval types.Interval) (decimal.Decimal, error) {
	if len(closes) < 2 {
		return decimal.Zero, fmt.Errorf("need at least 2 closes, got %d: %w", len(closes), InvalidInputErr)
	}
	periods, ok := types.PeriodsPerYear[interval]
	if !ok {
		return decimal.Zero, fmt.Errorf("interval %s: %w", interval, InvalidInputErr)
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev, _ := closes[i-1].Float64()
		cur, _ := closes[i].Float64()
		if prev <= 0 || cur <= 0 {
			return decimal.Zero, InvalidInputErr
		}
		returns = append(returns, math.Log(cur/prev))
	}

	stddev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stddev of returns: %w", err)
	}

	return decimal.NewFromFloat(stddev * math.Sqrt(periods)).Round(8), nil
}
