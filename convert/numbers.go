package convert

import (
	"math"
)

func OneDecimal(number float64) float64 {
	return RoundFloat64(number, 1)
}

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(int(decimals))) / math.Pow10(int(decimals))
}

// MWh2KWh rescales a per-MWh quantity to per-kWh.
func MWh2KWh(perMWh float64) float64 {
	return perMWh / 1000.0
}

func FractionToPercentage(frac float64) float64 {
	return frac * 100.0
}
