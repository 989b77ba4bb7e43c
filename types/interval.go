package types

import "time"

type Interval string

const (
	Hour     Interval = "60"
	FourHour Interval = "240"
	Day      Interval = "D"
	Week     Interval = "W"
)

var IntervalToTime = map[Interval]time.Duration{
	Hour:     time.Hour,
	FourHour: time.Hour * 4,
	Day:      time.Hour * 24,
	Week:     time.Hour * 24 * 7,
}

// PeriodsPerYear is used to annualize per-interval return statistics.
// Crypto markets trade continuously, hence 365 daily periods.
var PeriodsPerYear = map[Interval]float64{
	Hour:     365 * 24,
	FourHour: 365 * 6,
	Day:      365,
	Week:     52,
}
