package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/javisen/esios-go/esios"
)

// NewSnapshotHandler serves the latest fetched market data as JSON, keyed
// by indicator and UTC hour. Returns 503 until the first fetch completes.
func NewSnapshotHandler(logger *slog.Logger, inMem *esios.InMemData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if !inMem.Healthy() {
			http.Error(w, "no market data fetched yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(inMem.CurrentState()); err != nil {
			logger.Error("handling snapshot request", slog.Any("error", err))
		}
	}
}
