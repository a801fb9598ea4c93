package heatmap

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	temperaturePlaces = 2
	variancePlaces    = 1
)

// DeriveTemperature returns base+variance rounded to 2 decimal places.
//
// Arithmetic is done on the shortest decimal representation of each input and
// rounds half away from zero, so 2 + 0.675 gives 2.68 and not the 2.67 a
// binary float round would produce. Non-finite inputs are returned unrounded.
func DeriveTemperature(base, variance float64) float64 {
	if !finite(base) || !finite(variance) {
		return base + variance
	}
	sum := decimal.NewFromFloat(base).Add(decimal.NewFromFloat(variance))
	return roundTo(sum, temperaturePlaces)
}

// RoundVariance rounds a variance to 1 decimal place for display, half away
// from zero.
func RoundVariance(variance float64) float64 {
	if !finite(variance) {
		return variance
	}
	return roundTo(decimal.NewFromFloat(variance), variancePlaces)
}

// Derive builds the display form of a record.
func Derive(r MonthlyRecord, base float64) DerivedMonth {
	return DerivedMonth{
		Month:       r.Month,
		Variance:    RoundVariance(r.Variance),
		Temperature: DeriveTemperature(base, r.Variance),
	}
}

func roundTo(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
