package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/javisen/esios-go/config"
	"github.com/javisen/esios-go/esios"
	"github.com/lmittmann/tint"
)

// One-shot fetch for trying out tokens, tariffs and zones without
// running the daemon.
func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	w := os.Stdout
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339Nano,
		}),
	))

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	provider, err := esios.New(
		cnfg.Esios.Token,
		cnfg.Esios.GetTariff(),
		cnfg.Esios.GetZone(),
		cnfg.Esios.GetTimezone(),
		cnfg.Esios.GetIndicators())
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := provider.GetMarketData(ctx)
	if err != nil {
		panic(err)
	}

	for key, series := range snapshot.Sensors {
		fmt.Printf("%s (available: %t)\n", key, snapshot.Availability[key])
		for _, dh := range series.SortedHours() {
			fmt.Printf("  %s  %f\n", dh.String(), series[dh])
		}
	}

	fmt.Println(provider.Attribution())
}
