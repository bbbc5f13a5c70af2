package types

import (
	"context"
	"slices"
	"time"

	"github.com/javisen/esios-go/hours"
)

// Series holds one indicator's normalized values keyed by UTC hour.
// Gaps are legal and mean "not yet published".
type Series map[hours.DateHour]float64

func (s Series) Clone() Series {
	c := make(Series, len(s))
	for dh, v := range s {
		c[dh] = v
	}
	return c
}

// SortedHours returns the series keys in ascending time order.
func (s Series) SortedHours() []hours.DateHour {
	hs := make([]hours.DateHour, 0, len(s))
	for dh := range s {
		hs = append(hs, dh)
	}
	slices.SortFunc(hs, func(a, b hours.DateHour) int { return a.Compare(b) })
	return hs
}

// Merge copies all entries from other into s, overwriting existing hours.
func (s Series) Merge(other Series) {
	for dh, v := range other {
		s[dh] = v
	}
}

// IndicatorRecord is the uniform output of a single extraction call,
// regardless of which upstream API produced the data.
type IndicatorRecord struct {
	Name       string
	SourceID   string
	ObservedAt time.Time
	Unit       string
	Series     map[string]Series
}

// Snapshot accumulates indicator series across one polling cycle.
type Snapshot struct {
	ObservedAt   time.Time
	DataSource   string
	Sensors      map[string]Series
	Availability map[string]bool
}

func NewSnapshot(dataSource string, observedAt time.Time) Snapshot {
	return Snapshot{
		ObservedAt:   observedAt,
		DataSource:   dataSource,
		Sensors:      make(map[string]Series),
		Availability: make(map[string]bool),
	}
}

// Merge folds one extraction result into the snapshot. Availability for a
// key turns true as soon as at least one value was extracted for it.
func (s *Snapshot) Merge(rec IndicatorRecord) {
	for key, series := range rec.Series {
		existing, ok := s.Sensors[key]
		if !ok {
			existing = make(Series, len(series))
			s.Sensors[key] = existing
		}
		existing.Merge(series)
		if len(series) > 0 {
			s.Availability[key] = true
		} else if _, seen := s.Availability[key]; !seen {
			s.Availability[key] = false
		}
	}
}

// MarketDataProvider is anything that can produce a full snapshot of
// market indicator series for the current polling cycle.
type MarketDataProvider interface {
	GetMarketData(ctx context.Context) (Snapshot, error)
}
