package esios

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/javisen/esios-go/types"
)

const acceptHeader = "application/json; application/vnd.esios-api-v2+json"

// Esios downloads and extracts market data from api.esios.ree.es. With an
// API token it uses the per-indicator resource for all catalog
// indicators; without one it falls back to the public PVPC archive.
type Esios struct {
	token   string
	tariff  string
	geoZone string
	loc     *time.Location
	keys    []string
	fetch   []string
	source  SourceKind
	client  *http.Client
	logger  *slog.Logger

	// now is the clock used for look-back and observation stamps,
	// replaceable in tests.
	now func() time.Time
}

func New(token, tariff, geoZone, timezone string, keys []string) (*Esios, error) {
	if !slices.Contains(Tariffs, tariff) {
		return nil, fmt.Errorf("%w: unknown tariff %q", ErrConfiguration, tariff)
	}
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	source := SourceIndicator
	if token == "" {
		source = SourceArchive
	}
	if geoZone == "" {
		geoZone = ZonePeninsula
	}

	return &Esios{
		token:   token,
		tariff:  tariff,
		geoZone: geoZone,
		loc:     loc,
		keys:    keys,
		fetch:   ExpandKeys(keys),
		source:  source,
		client:  &http.Client{},
		logger:  slog.Default().With("module", "esios"),
		now:     time.Now,
	}, nil
}

func (e *Esios) UsingPrivateAPI() bool {
	return e.source == SourceIndicator
}

func (e *Esios) Attribution() string {
	return Attributions[e.source]
}

func (e *Esios) Location() *time.Location {
	return e.loc
}

// GetMarketData fetches the today and tomorrow windows for every enabled
// indicator and merges the extracted records into one snapshot. A
// rejected token aborts the cycle; a missing day (404, typically
// tomorrow before publication) is skipped silently.
func (e *Esios) GetMarketData(ctx context.Context) (types.Snapshot, error) {
	now := e.now()
	localNow := now.In(e.loc)

	todayReqs, tomorrowReqs := DailyRequests(e.source, e.fetch, localNow, localNow.AddDate(0, 0, 1))
	snapshot := types.NewSnapshot(e.source.String(), now.UTC().Truncate(time.Second))

	for _, req := range slices.Concat(todayReqs, tomorrowReqs) {
		payload, err := e.download(ctx, req.URL)
		if err != nil {
			if errors.Is(err, ErrBadAuth) {
				return snapshot, err
			}
			e.logger.Warn("download failed",
				slog.String("indicator", req.Key),
				slog.String("url", req.URL),
				slog.Any("error", err))
			continue
		}
		if payload == nil {
			e.logger.Debug("day not published yet", slog.String("indicator", req.Key), slog.String("url", req.URL))
			continue
		}

		record, err := Extract(req, payload, e.tariff, e.geoZone, e.loc, now)
		if err != nil {
			return snapshot, fmt.Errorf("extracting %s: %w", req.Key, err)
		}
		snapshot.Merge(record)
	}

	e.mergeDerived(&snapshot)

	return snapshot, nil
}

// mergeDerived fills in the indicators computed from upstream series
// rather than downloaded.
func (e *Esios) mergeDerived(snapshot *types.Snapshot) {
	if !slices.Contains(e.keys, KeyIndexed) {
		return
	}
	pvpc := snapshot.Sensors[KeyPVPC]
	adjustment := snapshot.Sensors[KeyAdjustment]
	if pvpc == nil || adjustment == nil {
		snapshot.Availability[KeyIndexed] = false
		return
	}
	indexed := DeriveIndexed(pvpc, adjustment)
	snapshot.Sensors[KeyIndexed] = indexed
	snapshot.Availability[KeyIndexed] = len(indexed) > 0
}

// download returns the payload bytes, or nil without error when the
// resource does not exist (yet).
func (e *Esios) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if e.source == SourceIndicator {
		req.Header.Set("Accept", acceptHeader)
		req.Header.Set("x-api-key", e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch indicator data: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status code %d", ErrBadAuth, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
