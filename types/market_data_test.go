package types

import (
	"testing"
	"time"

	"github.com/javisen/esios-go/hours"
)

func TestSeriesSortedHours(t *testing.T) {
	s := Series{
		{Date: "2026-01-02", Hour: 0}:  3,
		{Date: "2026-01-01", Hour: 23}: 2,
		{Date: "2026-01-01", Hour: 5}:  1,
	}

	sorted := s.SortedHours()
	if len(sorted) != 3 {
		t.Fatalf("expected 3 hours, got %d", len(sorted))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Compare(sorted[i]) >= 0 {
			t.Errorf("hours not strictly increasing at index %d: %v >= %v", i, sorted[i-1], sorted[i])
		}
	}
}

func TestSeriesClone(t *testing.T) {
	dh := hours.DateHour{Date: "2026-01-01", Hour: 10}
	orig := Series{dh: 1.5}
	clone := orig.Clone()
	clone[dh] = 9.9

	if orig[dh] != 1.5 {
		t.Errorf("mutating a clone changed the original series")
	}
}

func TestSnapshotMerge(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	snap := NewSnapshot("esios", now)

	h1 := hours.DateHour{Date: "2026-01-01", Hour: 10}
	h2 := hours.DateHour{Date: "2026-01-01", Hour: 11}

	snap.Merge(IndicatorRecord{Series: map[string]Series{"PVPC": {h1: 0.1}}})
	snap.Merge(IndicatorRecord{Series: map[string]Series{"PVPC": {h2: 0.2}}})
	snap.Merge(IndicatorRecord{Series: map[string]Series{"DEMAND": {}}})

	if len(snap.Sensors["PVPC"]) != 2 {
		t.Errorf("expected merged PVPC series with 2 hours, got %d", len(snap.Sensors["PVPC"]))
	}
	if !snap.Availability["PVPC"] {
		t.Errorf("expected PVPC to be available")
	}
	if snap.Availability["DEMAND"] {
		t.Errorf("expected DEMAND to be unavailable (empty series)")
	}

	// A later non-empty merge flips availability to true.
	snap.Merge(IndicatorRecord{Series: map[string]Series{"DEMAND": {h1: 28000.0}}})
	if !snap.Availability["DEMAND"] {
		t.Errorf("expected DEMAND to become available after a non-empty merge")
	}
}
