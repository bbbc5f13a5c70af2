package esios

import (
	"reflect"
	"testing"

	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

func TestExpandKeys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		expected []string
	}{
		{"plain key maps to itself", []string{KeyDemand}, []string{KeyDemand}},
		{"indexed fans out", []string{KeyIndexed}, []string{KeyPVPC, KeyAdjustment}},
		{"period needs pvpc", []string{KeyPeriod}, []string{KeyPVPC}},
		{"duplicates collapse", []string{KeyIndexed, KeyPVPC, KeyPeriod}, []string{KeyPVPC, KeyAdjustment}},
		{"unknown keys dropped", []string{"BOGUS"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandKeys(tt.keys); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDeriveIndexed(t *testing.T) {
	h1 := hours.DateHour{Date: "2026-02-03", Hour: 9}
	h2 := hours.DateHour{Date: "2026-02-03", Hour: 10}
	h3 := hours.DateHour{Date: "2026-02-03", Hour: 11}

	pvpc := types.Series{h1: 0.125, h2: 0.25, h3: 0.5}
	adjustment := types.Series{h1: 0.0625, h2: 0.125}

	indexed := DeriveIndexed(pvpc, adjustment)
	if len(indexed) != 2 {
		t.Fatalf("expected hours present in both inputs only, got %d", len(indexed))
	}
	if indexed[h1] != 0.1875 {
		t.Errorf("expected 0.1875 at h1, got %v", indexed[h1])
	}
	if _, ok := indexed[h3]; ok {
		t.Errorf("h3 is missing from the adjustment series and must not appear")
	}
}
