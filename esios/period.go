package esios

import (
	"fmt"
	"time"
)

// 2.0TD tariff periods. Weekends and national holidays are off-peak all
// day; weekdays follow the fixed hourly bands below.
const (
	PeriodPeak   = "P1"
	PeriodFlat   = "P2"
	PeriodValley = "P3"
)

// Fixed-date national holidays (month, day). Movable feasts are not
// tracked; on those days the period is reported one band too high.
var nationalHolidays = map[[2]int]bool{
	{1, 1}:   true, // Año Nuevo
	{1, 6}:   true, // Reyes
	{5, 1}:   true, // Día del Trabajador
	{8, 15}:  true, // Asunción
	{10, 12}: true, // Fiesta Nacional
	{11, 1}:  true, // Todos los Santos
	{12, 6}:  true, // Constitución
	{12, 8}:  true, // Inmaculada
	{12, 25}: true, // Navidad
}

// TariffPeriod returns the 2.0TD period for a local civil instant.
func TariffPeriod(local time.Time) string {
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return PeriodValley
	}
	if nationalHolidays[[2]int{int(local.Month()), local.Day()}] {
		return PeriodValley
	}

	switch h := local.Hour(); {
	case h < 8:
		return PeriodValley
	case h < 10:
		return PeriodFlat
	case h < 14:
		return PeriodPeak
	case h < 18:
		return PeriodFlat
	case h < 22:
		return PeriodPeak
	default:
		return PeriodFlat
	}
}

// NextPeriodChange returns the next local instant at which the tariff
// period differs from the current one, scanning hour by hour.
func NextPeriodChange(local time.Time) (time.Time, string, error) {
	current := TariffPeriod(local)
	next := local.Truncate(time.Hour)
	for i := 0; i < 24*7; i++ {
		next = next.Add(time.Hour)
		if p := TariffPeriod(next); p != current {
			return next, p, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("no period change within a week of %s", local)
}
