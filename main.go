package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/javisen/esios-go/config"
	"github.com/javisen/esios-go/database"
	"github.com/javisen/esios-go/esios"
	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/logging"
	"github.com/javisen/esios-go/publish"
	"github.com/javisen/esios-go/task"
	"github.com/javisen/esios-go/types"
	"github.com/javisen/esios-go/www"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("esios-go is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	provider, err := esios.New(
		cnfg.Esios.Token,
		cnfg.Esios.GetTariff(),
		cnfg.Esios.GetZone(),
		cnfg.Esios.GetTimezone(),
		cnfg.Esios.GetIndicators())
	if err != nil {
		panic(fmt.Sprintf("market data provider error: %v", err))
	}

	if provider.UsingPrivateAPI() {
		logger.Info("using token authenticated ESIOS API")
	} else {
		logger.Info("no API token configured, using public PVPC archive only")
	}

	inMem := esios.NewInMemData()

	tasks := task.NewTasks(db, []types.MarketDataProvider{provider}, inMem, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	if cnfg.Mqtt.Enabled() {
		publisher := publish.New(
			cnfg.Mqtt.Host,
			cnfg.Mqtt.Port,
			cnfg.Mqtt.Username,
			cnfg.Mqtt.Password,
			cnfg.Mqtt.GetTopicPrefix(),
			provider.Location(),
			cnfg.Esios.GetIndicators())
		if err := publisher.Connect(); err != nil {
			panic(fmt.Sprintf("MQTT connection error: %v", err))
		}
		defer publisher.Disconnect()
		go publisher.Run(ctx, inMem)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	sysInfo := www.SysInfo{
		Version:     Version,
		StartedAt:   time.Now().Format(time.RFC3339),
		DataSource:  providerSource(provider),
		Tariff:      cnfg.Esios.GetTariff(),
		Zone:        cnfg.Esios.GetZone(),
		Attribution: provider.Attribution(),
	}

	server := www.StartServer(db, tasks, inMem, provider.Location(), cnfg.Esios.GetIndicators(), sysInfo, cnfg.Api)
	server.Run(ctx)
}

func providerSource(p *esios.Esios) string {
	if p.UsingPrivateAPI() {
		return esios.SourceIndicator.String()
	}
	return esios.SourceArchive.String()
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
