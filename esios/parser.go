package esios

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/javisen/esios-go/convert"
	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

const archiveDayLayout = "02/01/2006"

// Extract routes one downloaded payload to the extractor matching the
// request's source kind. now is injected so extraction is deterministic.
func Extract(req Request, payload []byte, tariff, geoZone string, loc *time.Location, now time.Time) (types.IndicatorRecord, error) {
	switch req.Kind {
	case SourceArchive:
		field, ok := tariffToID[tariff]
		if !ok {
			return types.IndicatorRecord{}, fmt.Errorf("%w: unknown tariff %q", ErrConfiguration, tariff)
		}
		return ExtractArchive(payload, field, loc, now)
	default:
		if geoZone == "" {
			geoZone = ZonePeninsula
		}
		return ExtractIndicator(payload, req.Key, geoZone, loc, now)
	}
}

type archivePayload struct {
	PVPC []map[string]string `json:"PVPC"`
}

// ExtractArchive parses one day of the public PVPC archive: 24 hourly
// records with locale-formatted prices in €/MWh, keyed by tariff field
// code. The output series runs from local midnight, converted to UTC.
func ExtractArchive(payload []byte, tariffField string, loc *time.Location, now time.Time) (types.IndicatorRecord, error) {
	var data archivePayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return types.IndicatorRecord{}, fmt.Errorf("%w: decoding archive payload: %v", ErrParse, err)
	}
	if data.PVPC == nil {
		return types.IndicatorRecord{}, fmt.Errorf("%w: no PVPC key in archive payload", ErrMissingField)
	}
	if len(data.PVPC) < 24 {
		return types.IndicatorRecord{}, fmt.Errorf("%w: archive has %d hourly records, expected 24", ErrParse, len(data.PVPC))
	}

	day, err := time.ParseInLocation(archiveDayLayout, data.PVPC[0]["Dia"], loc)
	if err != nil {
		return types.IndicatorRecord{}, fmt.Errorf("%w: bad archive day %q: %v", ErrParse, data.PVPC[0]["Dia"], err)
	}
	first := hours.FromTime(day.UTC())

	prices := make(types.Series, len(data.PVPC))
	for i, record := range data.PVPC {
		raw, ok := record[tariffField]
		if !ok {
			return types.IndicatorRecord{}, fmt.Errorf("%w: no %q field in archive record %d", ErrParse, tariffField, i)
		}
		value, err := parseArchivePrice(raw)
		if err != nil {
			return types.IndicatorRecord{}, err
		}
		prices[first.Add(i)] = value
	}

	return types.IndicatorRecord{
		Name:       "PVPC ESIOS",
		SourceID:   SourceIDLegacy,
		ObservedAt: now.UTC().Truncate(time.Second),
		Unit:       "€/kWh",
		Series:     map[string]types.Series{KeyPVPC: prices},
	}, nil
}

// parseArchivePrice turns a decimal-comma €/MWh string into €/kWh.
func parseArchivePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad archive price %q: %v", ErrParse, raw, err)
	}
	return convert.RoundFloat64(convert.MWh2KWh(v), pricePrecision), nil
}

type indicatorPayload struct {
	Indicator *indicatorData `json:"indicator"`
}

type indicatorData struct {
	ID     int              `json:"id"`
	Name   string           `json:"name"`
	Values []indicatorValue `json:"values"`
}

type indicatorValue struct {
	GeoID    int      `json:"geo_id"`
	Datetime string   `json:"datetime"`
	Value    *float64 `json:"value"`
}

// ExtractIndicator parses a token-API indicator payload into one record.
// Observations are grouped per geo zone, timestamps are corrected to the
// caller's timezone convention, values get per-indicator unit conversion,
// and the zone to use is picked by fallback precedence. When the current
// hour is not published yet it is filled from the most recent past hour.
func ExtractIndicator(payload []byte, key, geoZone string, loc *time.Location, now time.Time) (types.IndicatorRecord, error) {
	var data indicatorPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return types.IndicatorRecord{}, fmt.Errorf("%w: decoding indicator payload: %v", ErrParse, err)
	}
	if data.Indicator == nil {
		return types.IndicatorRecord{}, fmt.Errorf("%w: no indicator key in payload", ErrMissingField)
	}
	ind := data.Indicator

	record := types.IndicatorRecord{
		Name:       ind.Name,
		SourceID:   strconv.Itoa(ind.ID),
		ObservedAt: now.UTC().Truncate(time.Second),
		Unit:       "N/A",
	}

	if len(ind.Values) == 0 {
		record.Series = map[string]types.Series{key: {}}
		return record, nil
	}

	offset := ReferenceOffset(loc)

	// Group per zone, remembering first-seen order for the last-resort
	// fallback below.
	grouped := make(map[string]types.Series)
	var zoneOrder []string
	for _, obs := range ind.Values {
		ts, err := time.Parse(time.RFC3339, obs.Datetime)
		if err != nil {
			return types.IndicatorRecord{}, fmt.Errorf("%w: bad datetime %q: %v", ErrParse, obs.Datetime, err)
		}
		zone := GeoZoneName(obs.GeoID)
		series, ok := grouped[zone]
		if !ok {
			series = make(types.Series)
			grouped[zone] = series
			zoneOrder = append(zoneOrder, zone)
		}
		series[hours.FromTime(ts.UTC().Add(offset))] = convertValue(key, obs.Value)
	}

	var selected types.Series
	for _, zone := range []string{geoZone, ZoneNationwide, ZonePeninsula} {
		if s, ok := grouped[zone]; ok {
			selected = s
			break
		}
	}
	if selected == nil {
		selected = grouped[zoneOrder[0]]
	}

	// Work on a copy so the look-back fill never leaks synthesized values
	// back into the grouped per-zone data.
	selected = selected.Clone()
	lookBackFill(selected, hours.FromTime(now))

	record.Series = map[string]types.Series{key: selected}
	return record, nil
}

// lookBackFill inserts a value for the current hour when the feed has not
// published it yet, reusing the most recent past hour. A series with no
// hour at or before now is left untouched.
func lookBackFill(series types.Series, now hours.DateHour) {
	if _, ok := series[now]; ok {
		return
	}

	var latest hours.DateHour
	found := false
	for dh := range series {
		if dh.Compare(now) > 0 {
			continue
		}
		if !found || dh.Compare(latest) > 0 {
			latest = dh
			found = true
		}
	}
	if found {
		series[now] = series[latest]
	}
}

// convertValue normalizes one raw observation for the given indicator.
// A null upstream value counts as zero.
func convertValue(key string, raw *float64) float64 {
	if raw == nil {
		return 0.0
	}
	v := *raw
	switch key {
	case KeyPVPC, KeyInjection, KeyMAG, KeyOMIE, KeyAdjustment:
		return convert.RoundFloat64(convert.MWh2KWh(v), pricePrecision)
	case KeyCO2:
		// Values above 10 are on the per-GWh scale.
		if v > 10 {
			return convert.RoundFloat64(convert.MWh2KWh(v), 3)
		}
		return convert.RoundFloat64(v, 3)
	case KeyRenewables:
		// Values inside (0, 1) are stored as a fraction of total generation.
		if v > 0 && v < 1.0 {
			return convert.RoundFloat64(convert.FractionToPercentage(v), 1)
		}
		return convert.RoundFloat64(v, 1)
	default:
		return convert.RoundFloat64(v, 1)
	}
}
