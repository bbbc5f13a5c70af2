package esios

import (
	"fmt"
	"time"
)

const urlDateLayout = "2006-01-02"

// Request is one downloadable resource, tagged with the indicator it
// targets and the payload shape to expect back.
type Request struct {
	Key  string
	Kind SourceKind
	URL  string
}

// DailyRequests builds the request sets for the "today" and "tomorrow"
// windows. Archive mode yields exactly one request per day regardless of
// the key set. Indicator mode yields one request per known downloadable
// key and day, in catalog order; unknown keys are silently skipped.
func DailyRequests(kind SourceKind, keys []string, today, tomorrow time.Time) ([]Request, []Request) {
	if kind == SourceArchive {
		return []Request{archiveRequest(today)}, []Request{archiveRequest(tomorrow)}
	}

	requested := make(map[string]bool, len(keys))
	for _, k := range keys {
		requested[k] = true
	}

	var todayReqs, tomorrowReqs []Request
	for _, key := range AllIndicators {
		dataID, downloadable := indicatorToDataID[key]
		if !requested[key] || !downloadable {
			continue
		}
		todayReqs = append(todayReqs, indicatorRequest(key, dataID, today))
		tomorrowReqs = append(tomorrowReqs, indicatorRequest(key, dataID, tomorrow))
	}

	return todayReqs, tomorrowReqs
}

func archiveRequest(day time.Time) Request {
	return Request{
		Key:  KeyPVPC,
		Kind: SourceArchive,
		URL:  fmt.Sprintf(urlPublicResource, day.Format(urlDateLayout)),
	}
}

func indicatorRequest(key, dataID string, day time.Time) Request {
	d := day.Format(urlDateLayout)
	return Request{
		Key:  key,
		Kind: SourceIndicator,
		URL:  fmt.Sprintf(urlTokenResource, dataID, d, d),
	}
}
