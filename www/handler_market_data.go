package www

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	_ "embed"

	"github.com/javisen/esios-go/config"
	"github.com/javisen/esios-go/database"
	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

type marketDataView struct {
	Indicators []string
	Rows       []marketDataViewRow
}

type marketDataViewRow struct {
	When   hours.DateHour
	Values []string
}

func NewMarketDataHandler(logger *slog.Logger, config config.AppConfigApi, db *database.Database, tm *TemplateManager, indicators []string, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")
			from := hours.FromNow().Sub(intOrDefault(r.URL, "hours", 24))

			view, err := buildMarketDataView(r, db, indicators, from)
			if err != nil {
				logger.Error("handling market_data request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if err := tm.ExecuteToWriter("market_data.html", view, &w); err != nil {
				logger.Error("handling market_data request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

		case http.MethodPost:
			task()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func buildMarketDataView(r *http.Request, db *database.Database, indicators []string, from hours.DateHour) (marketDataView, error) {
	series := make(map[string]types.Series, len(indicators))
	var allHours []hours.DateHour

	for _, ind := range indicators {
		s, err := db.GetSeriesFrom(r.Context(), ind, from)
		if err != nil {
			return marketDataView{}, err
		}
		series[ind] = s
		for dh := range s {
			if !slices.Contains(allHours, dh) {
				allHours = append(allHours, dh)
			}
		}
	}

	slices.SortFunc(allHours, func(a, b hours.DateHour) int { return a.Compare(b) })

	view := marketDataView{Indicators: indicators}
	for _, dh := range allHours {
		row := marketDataViewRow{When: dh}
		for _, ind := range indicators {
			if v, ok := series[ind][dh]; ok {
				row.Values = append(row.Values, fmt.Sprintf("%.5f", v))
			} else {
				row.Values = append(row.Values, "-")
			}
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}
