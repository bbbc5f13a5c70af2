package esios

import (
	"testing"
	"time"
)

func TestTariffPeriodWeekday(t *testing.T) {
	// Monday 2026-01-12.
	tests := []struct {
		hour     int
		expected string
	}{
		{0, PeriodValley},
		{7, PeriodValley},
		{8, PeriodFlat},
		{9, PeriodFlat},
		{10, PeriodPeak},
		{13, PeriodPeak},
		{14, PeriodFlat},
		{17, PeriodFlat},
		{18, PeriodPeak},
		{21, PeriodPeak},
		{22, PeriodFlat},
		{23, PeriodFlat},
	}

	for _, tt := range tests {
		local := time.Date(2026, time.January, 12, tt.hour, 30, 0, 0, madrid)
		if got := TariffPeriod(local); got != tt.expected {
			t.Errorf("hour %02d: expected %s, got %s", tt.hour, tt.expected, got)
		}
	}
}

func TestTariffPeriodWeekendAndHoliday(t *testing.T) {
	// Saturday midday.
	saturday := time.Date(2026, time.January, 10, 12, 0, 0, 0, madrid)
	if got := TariffPeriod(saturday); got != PeriodValley {
		t.Errorf("saturday: expected %s, got %s", PeriodValley, got)
	}

	// Reyes (Jan 6) falls on a Tuesday in 2026 and is still off-peak.
	holiday := time.Date(2026, time.January, 6, 12, 0, 0, 0, madrid)
	if got := TariffPeriod(holiday); got != PeriodValley {
		t.Errorf("holiday: expected %s, got %s", PeriodValley, got)
	}
}

func TestNextPeriodChange(t *testing.T) {
	// Monday 11:00 is P1; the next change is P2 at 14:00.
	local := time.Date(2026, time.January, 12, 11, 0, 0, 0, madrid)
	at, period, err := NextPeriodChange(local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if period != PeriodFlat {
		t.Errorf("expected next period %s, got %s", PeriodFlat, period)
	}
	if at.In(madrid).Hour() != 14 {
		t.Errorf("expected change at 14:00 local, got %s", at.In(madrid))
	}
}
