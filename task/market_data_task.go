package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/javisen/esios-go/database"
	"github.com/javisen/esios-go/esios"
	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

func NewMarketDataTask(
	logger *slog.Logger,
	db *database.Database,
	providers []types.MarketDataProvider,
	inMem *esios.InMemData) func() {

	if len(providers) == 0 {
		panic("no market data providers")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if needImmediateMarketDataUpdate(ctx, db) {
		logger.Info("need an immediate update of market data")
		runMarketDataTask(logger, db, providers, inMem)
	} else {
		logger.Debug("no need for immediate update of market data")
	}

	return func() { runMarketDataTask(logger, db, providers, inMem) }
}

func runMarketDataTask(
	logger *slog.Logger,
	db *database.Database,
	providers []types.MarketDataProvider,
	inMem *esios.InMemData) {

	logger.Debug("running market data task...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var snapshot types.Snapshot
	fetched := false
	for _, provider := range providers {
		s, err := provider.GetMarketData(ctx)
		if err != nil {
			if errors.Is(err, esios.ErrBadAuth) {
				logger.Error("market data task error, api token rejected, check the configuration")
				return
			}
			logger.Error("market data task error, fetching market data", slog.Any("error", err))
			continue
		}
		snapshot = s
		fetched = true
		break
	}

	if !fetched {
		logger.Error("market data task error, no provider delivered data")
		return
	}

	available := 0
	var rows []database.MarketDataRow
	for key, series := range snapshot.Sensors {
		if snapshot.Availability[key] {
			available++
		}
		for dh, value := range series {
			rows = append(rows, database.MarketDataRow{When: dh, Indicator: key, Value: value})
		}
	}

	if len(rows) == 0 {
		logger.Warn("market data task done, upstream returned no values this cycle")
		inMem.Set(snapshot)
		return
	}

	if err := db.SaveMarketData(ctx, rows); err != nil {
		logger.Error("market data task error, saving market data", slog.Any("error", err))
		return
	}

	inMem.Set(snapshot)

	logger.Info("market data task done",
		slog.Int("noOfValuesUpdated", len(rows)),
		slog.Int("noOfIndicatorsAvailable", available))
}

func needImmediateMarketDataUpdate(ctx context.Context, db *database.Database) bool {
	dh := hours.FromNow()
	if _, err := db.GetMarketData(ctx, esios.KeyPVPC, dh); err != nil {
		return true
	}
	return false
}
