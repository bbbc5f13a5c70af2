package database

import (
	"context"
	"fmt"

	"github.com/javisen/esios-go/hours"
	"github.com/javisen/esios-go/types"
)

type MarketDataRow struct {
	When      hours.DateHour
	Indicator string
	Value     float64
}

// SaveMarketData upserts one polling cycle's values. Re-fetching the same
// hours overwrites, which is what we want when the feed revises data.
func (d *Database) SaveMarketData(ctx context.Context, rows []MarketDataRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting market data transaction: %w", err)
	}

	for _, row := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO market_data (date, hour, indicator, value) VALUES (?, ?, ?, ?)
			ON CONFLICT(date, hour, indicator) DO UPDATE SET value = excluded.value`,
			row.When.Date,
			row.When.Hour,
			row.Indicator,
			row.Value)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("saving market data for %s at %s: %w", row.Indicator, row.When, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing market data: %w", err)
	}
	return nil
}

func (d *Database) GetMarketData(ctx context.Context, indicator string, dh hours.DateHour) (MarketDataRow, error) {
	row := d.read.QueryRowContext(ctx, `SELECT
		date, hour, indicator, value
		FROM market_data
		WHERE indicator = ? AND date = ? AND hour = ?`,
		indicator, dh.Date, dh.Hour)

	var md MarketDataRow
	err := row.Scan(&md.When.Date, &md.When.Hour, &md.Indicator, &md.Value)
	if err != nil {
		return MarketDataRow{}, fmt.Errorf("fetching market data for %s at %s: %w", indicator, dh, err)
	}

	return md, nil
}

func (d *Database) GetMarketDataFrom(ctx context.Context, indicator string, dh hours.DateHour) ([]MarketDataRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, indicator, value
		FROM market_data
		WHERE indicator = ? AND ((date = ? AND hour >= ?) OR date > ?)
		ORDER BY date, hour ASC`,
		indicator, dh.Date, dh.Hour, dh.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching market data series for %s: %w", indicator, err)
	}
	defer rows.Close()

	var result []MarketDataRow
	for rows.Next() {
		var md MarketDataRow
		if err := rows.Scan(&md.When.Date, &md.When.Hour, &md.Indicator, &md.Value); err != nil {
			return nil, fmt.Errorf("scanning market data row: %w", err)
		}
		result = append(result, md)
	}

	return result, rows.Err()
}

// GetSeriesFrom loads one indicator's stored values into a series.
func (d *Database) GetSeriesFrom(ctx context.Context, indicator string, dh hours.DateHour) (types.Series, error) {
	rows, err := d.GetMarketDataFrom(ctx, indicator, dh)
	if err != nil {
		return nil, err
	}
	series := make(types.Series, len(rows))
	for _, row := range rows {
		series[row.When] = row.Value
	}
	return series, nil
}

func (d *Database) PurgeMarketData(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "market_data", retentionDays)
}
