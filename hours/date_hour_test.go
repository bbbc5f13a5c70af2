package hours

import (
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2026-01-01", Hour: 5}
	expected := "2026-01-01 05"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourIsoString(t *testing.T) {
	dh := DateHour{Date: "2026-01-01", Hour: 15}
	expected := "2026-01-01T15:00:00Z"
	if s := dh.IsoString(); s != expected {
		t.Errorf("IsoString() expected %q, got %q", expected, s)
	}
}

func TestDateHourTime(t *testing.T) {
	dh := DateHour{Date: "2026-01-01", Hour: 15}
	expected := time.Date(2026, time.January, 1, 15, 0, 0, 0, time.UTC)
	if got := dh.Time(); !got.Equal(expected) {
		t.Errorf("Time() expected %v, got %v", expected, got)
	}
}

func TestDateHourAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    DateHour
		addHours int
		expected DateHour
	}{
		{
			name:     "add within same day",
			input:    DateHour{Date: "2026-01-01", Hour: 10},
			addHours: 2,
			expected: DateHour{Date: "2026-01-01", Hour: 12},
		},
		{
			name:     "add crossing midnight",
			input:    DateHour{Date: "2026-01-01", Hour: 23},
			addHours: 2,
			expected: DateHour{Date: "2026-01-02", Hour: 1},
		},
		{
			name:     "add negative hours (subtract)",
			input:    DateHour{Date: "2026-01-01", Hour: 1},
			addHours: -2,
			expected: DateHour{Date: "2025-12-31", Hour: 23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Add(tt.addHours)
			if result != tt.expected {
				t.Errorf("Add(%d) expected %+v, got %+v", tt.addHours, tt.expected, result)
			}
		})
	}
}

func TestDateHourCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     DateHour
		expected int
	}{
		{"equal", DateHour{"2026-01-01", 5}, DateHour{"2026-01-01", 5}, 0},
		{"earlier date", DateHour{"2025-12-31", 23}, DateHour{"2026-01-01", 0}, -1},
		{"later date", DateHour{"2026-01-02", 0}, DateHour{"2026-01-01", 23}, 1},
		{"earlier hour", DateHour{"2026-01-01", 4}, DateHour{"2026-01-01", 5}, -1},
		{"later hour", DateHour{"2026-01-01", 6}, DateHour{"2026-01-01", 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.expected {
				t.Errorf("Compare() expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDateHourIsZero(t *testing.T) {
	var dh DateHour
	if !dh.IsZero() {
		t.Errorf("expected a zero value DateHour to be zero")
	}
	dh = DateHour{Date: "2026-01-01", Hour: 0}
	if dh.IsZero() {
		t.Errorf("expected a non-zero DateHour (non-empty Date) not to be zero")
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2026, time.January, 1, 15, 30, 0, 0, time.UTC)
	dh := FromTime(tm)
	expected := DateHour{Date: "2026-01-01", Hour: 15}
	if dh != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, dh)
	}

	var zero time.Time
	dhZero := FromTime(zero)
	if !dhZero.IsZero() {
		t.Errorf("FromTime() with zero time expected a zero DateHour")
	}
}

func TestFromIso(t *testing.T) {
	isoStr := "2026-01-01T15:00:00Z"
	parsed := FromIso(isoStr)
	expected := time.Date(2026, time.January, 1, 15, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("FromIso() expected %v, got %v", expected, parsed)
	}

	invalid := "not a valid iso date"
	parsedInvalid := FromIso(invalid)
	if !parsedInvalid.IsZero() {
		t.Errorf("FromIso() expected zero time for an invalid date string")
	}
}

func TestLocationMadrid(t *testing.T) {
	// Winter: Madrid is at UTC+1.
	tmWinter := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	madridWinter := LocationMadrid(tmWinter)
	_, offsetWinter := madridWinter.Zone()
	if offsetWinter != 3600 {
		t.Errorf("LocationMadrid() on winter date expected offset 3600 seconds, got %d", offsetWinter)
	}

	// Summer: Madrid is at UTC+2.
	tmSummer := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	madridSummer := LocationMadrid(tmSummer)
	_, offsetSummer := madridSummer.Zone()
	if offsetSummer != 7200 {
		t.Errorf("LocationMadrid() on summer date expected offset 7200 seconds, got %d", offsetSummer)
	}
}
