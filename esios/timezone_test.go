package esios

import (
	"errors"
	"testing"
	"time"
)

func TestReferenceOffset(t *testing.T) {
	tests := []struct {
		timezone string
		expected time.Duration
	}{
		{"Europe/Madrid", 0},
		{"Atlantic/Canary", time.Hour},
		{"UTC", time.Hour},
		{"America/New_York", 6 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ReferenceOffset(loc); got != tt.expected {
				t.Errorf("expected offset %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoadLocationInvalid(t *testing.T) {
	_, err := LoadLocation("Not/AZone")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
