package esios

import (
	"testing"
	"time"

	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

func testSnapshot() types.Snapshot {
	s := types.NewSnapshot("esios", time.Date(2026, 2, 3, 10, 5, 0, 0, time.UTC))
	s.Sensors[KeyPVPC] = types.Series{
		{Date: "2026-02-03", Hour: 10}: 0.125,
		{Date: "2026-02-03", Hour: 11}: 0.25,
	}
	s.Availability[KeyPVPC] = true
	s.Sensors[KeyCO2] = types.Series{}
	s.Availability[KeyCO2] = false
	return s
}

func TestInMemDataHealthy(t *testing.T) {
	d := NewInMemData()
	if d.Healthy() {
		t.Error("expected unhealthy before first snapshot")
	}

	d.Set(testSnapshot())
	if !d.Healthy() {
		t.Error("expected healthy after snapshot with available sensor")
	}
}

func TestInMemDataValueAt(t *testing.T) {
	d := NewInMemData()
	d.Set(testSnapshot())

	v, ok := d.ValueAt(KeyPVPC, hours.DateHour{Date: "2026-02-03", Hour: 11})
	if !ok || v != 0.25 {
		t.Errorf("got (%f, %t), want (0.25, true)", v, ok)
	}

	if _, ok := d.ValueAt(KeyPVPC, hours.DateHour{Date: "2026-02-03", Hour: 12}); ok {
		t.Error("expected no value for hour outside series")
	}

	if _, ok := d.ValueAt(KeyDemand, hours.DateHour{Date: "2026-02-03", Hour: 10}); ok {
		t.Error("expected no value for unknown sensor")
	}
}

func TestInMemDataCurrentStateIsACopy(t *testing.T) {
	d := NewInMemData()
	d.Set(testSnapshot())

	state := d.CurrentState()
	state.Sensors[KeyPVPC][hours.DateHour{Date: "2026-02-03", Hour: 10}] = 99

	v, _ := d.ValueAt(KeyPVPC, hours.DateHour{Date: "2026-02-03", Hour: 10})
	if v != 0.125 {
		t.Errorf("mutating returned state leaked into the store, got %f", v)
	}
}

func TestInMemDataCurrentValues(t *testing.T) {
	d := NewInMemData()
	d.Set(testSnapshot())

	values := d.CurrentValues(hours.DateHour{Date: "2026-02-03", Hour: 10})
	if len(values) != 1 || values[KeyPVPC] != 0.125 {
		t.Errorf("unexpected values: %v", values)
	}
}
