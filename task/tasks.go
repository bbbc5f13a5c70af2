package task

import (
	"context"
	"log/slog"

	"github.com/javisen/esios-go/config"
	"github.com/javisen/esios-go/database"
	"github.com/javisen/esios-go/esios"
	"github.com/javisen/esios-go/types"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	MarketDataTask  func()
	MaintenanceTask func()
}

func NewTasks(
	db *database.Database,
	providers []types.MarketDataProvider,
	inMem *esios.InMemData,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		MarketDataTask:  NewMarketDataTask(logger.With(slog.String("task", "market_data")), db, providers, inMem),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Esios.GetRunAt(), t.MarketDataTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
