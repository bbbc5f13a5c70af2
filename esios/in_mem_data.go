package esios

import (
	"sync"
	"time"

	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

// InMemData holds the latest snapshot produced by the poll task so the
// web server and the MQTT publisher can read current values without
// touching the database.
type InMemData struct {
	mu   sync.RWMutex
	data types.Snapshot
}

func NewInMemData() *InMemData {
	return &InMemData{}
}

func (d *InMemData) Healthy() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, available := range d.data.Availability {
		if available {
			return true
		}
	}
	return false
}

func (d *InMemData) Set(snapshot types.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = snapshot
}

// CurrentState returns a deep copy of the latest snapshot.
func (d *InMemData) CurrentState() types.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := types.NewSnapshot(d.data.DataSource, d.data.ObservedAt)
	for key, series := range d.data.Sensors {
		snapshot.Sensors[key] = series.Clone()
	}
	for key, available := range d.data.Availability {
		snapshot.Availability[key] = available
	}
	return snapshot
}

func (d *InMemData) ObservedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.ObservedAt
}

// ValueAt returns one indicator's value for the given hour.
func (d *InMemData) ValueAt(key string, dh hours.DateHour) (float64, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	series, ok := d.data.Sensors[key]
	if !ok {
		return 0, false
	}
	v, ok := series[dh]
	return v, ok
}

// CurrentValues returns the value of every available indicator at the
// given hour.
func (d *InMemData) CurrentValues(dh hours.DateHour) map[string]float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	values := make(map[string]float64)
	for key, series := range d.data.Sensors {
		if v, ok := series[dh]; ok {
			values[key] = v
		}
	}
	return values
}
