package esios

import (
	"testing"
	"time"
)

func TestDailyRequestsArchive(t *testing.T) {
	today := time.Date(2026, time.February, 3, 11, 0, 0, 0, madrid)
	tomorrow := today.AddDate(0, 0, 1)

	todayReqs, tomorrowReqs := DailyRequests(SourceArchive, []string{KeyPVPC, KeyCO2, KeyDemand}, today, tomorrow)

	if len(todayReqs) != 1 || len(tomorrowReqs) != 1 {
		t.Fatalf("archive mode must yield one request per day, got %d and %d", len(todayReqs), len(tomorrowReqs))
	}

	expected := "https://api.esios.ree.es/archives/70/download_json?locale=es&date=2026-02-03"
	if todayReqs[0].URL != expected {
		t.Errorf("expected url %q, got %q", expected, todayReqs[0].URL)
	}
	if todayReqs[0].Kind != SourceArchive {
		t.Errorf("expected archive kind on the request")
	}
	if tomorrowReqs[0].URL == todayReqs[0].URL {
		t.Errorf("tomorrow's url must carry the next day")
	}
}

func TestDailyRequestsIndicator(t *testing.T) {
	today := time.Date(2026, time.February, 3, 11, 0, 0, 0, madrid)
	tomorrow := today.AddDate(0, 0, 1)

	// CO2 before PVPC on purpose: output must follow catalog order.
	// BOGUS is silently skipped, and so is the derived INDEXED key.
	keys := []string{KeyCO2, "BOGUS", KeyPVPC, KeyIndexed}
	todayReqs, tomorrowReqs := DailyRequests(SourceIndicator, keys, today, tomorrow)

	if len(todayReqs) != 2 || len(tomorrowReqs) != 2 {
		t.Fatalf("expected 2 requests per day, got %d and %d", len(todayReqs), len(tomorrowReqs))
	}

	if todayReqs[0].Key != KeyPVPC || todayReqs[1].Key != KeyCO2 {
		t.Errorf("expected catalog order PVPC, CO2_EMISSIONS, got %s, %s", todayReqs[0].Key, todayReqs[1].Key)
	}

	expected := "https://api.esios.ree.es/indicators/1001?start_date=2026-02-03T00:00&end_date=2026-02-03T23:59"
	if todayReqs[0].URL != expected {
		t.Errorf("expected url %q, got %q", expected, todayReqs[0].URL)
	}

	for _, req := range tomorrowReqs {
		if req.Kind != SourceIndicator {
			t.Errorf("expected indicator kind on request for %s", req.Key)
		}
	}
}

func TestDailyRequestsUnknownKeysOnly(t *testing.T) {
	today := time.Date(2026, time.February, 3, 11, 0, 0, 0, madrid)
	todayReqs, tomorrowReqs := DailyRequests(SourceIndicator, []string{"BOGUS"}, today, today.AddDate(0, 0, 1))
	if len(todayReqs) != 0 || len(tomorrowReqs) != 0 {
		t.Errorf("unknown keys must be skipped, not errored")
	}
}
