package esios

import (
	"fmt"
	"time"
)

// referenceTZ is the civil timezone the upstream feed publishes in.
var referenceTZ *time.Location

func init() {
	var err error
	referenceTZ, err = time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(fmt.Sprintf("failed to load reference timezone: %v", err))
	}
}

// referenceDate is a fixed instant without daylight-saving ambiguity in
// the reference zone, used to evaluate timezone offsets.
var referenceDate = [3]int{2021, 1, 1}

// LoadLocation resolves a timezone name supplied by the caller.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q: %v", ErrConfiguration, name, err)
	}
	return loc, nil
}

// ReferenceOffset returns the signed duration that must be added to an
// instant computed by attaching the reference timezone to a naive
// timestamp, to obtain the instant that would result from attaching loc
// instead. The upstream feed stamps values in the reference zone, so this
// corrects series for callers living elsewhere.
func ReferenceOffset(loc *time.Location) time.Duration {
	y, m, d := referenceDate[0], time.Month(referenceDate[1]), referenceDate[2]
	ref := time.Date(y, m, d, 0, 0, 0, 0, referenceTZ)
	local := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return local.Sub(ref)
}
