package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type LogEntryRow struct {
	Timestamp time.Time
	Level     int
	Message   string
	Attrs     string
}

func (d *Database) SaveLogEntry(ctx context.Context, r LogEntryRow) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO log (timestamp, level, message, attrs)
		VALUES (?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Level,
		r.Message,
		r.Attrs)
	if err != nil {
		return fmt.Errorf("saving log entry: %w", err)
	}
	return nil
}

func (d *Database) GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]LogEntryRow, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT timestamp, level, message, attrs
		FROM log
		WHERE level >= ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		minLvl, pageSize, (page-1)*pageSize)

	if err != nil {
		return nil, fmt.Errorf("fetching log entries: %w", err)
	}
	defer rows.Close()

	var entries []LogEntryRow
	for rows.Next() {
		var ts string
		var entry LogEntryRow
		if err := rows.Scan(&ts, &entry.Level, &entry.Message, &entry.Attrs); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Timestamp = t
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// PurgeLog trims the log table down to maxEntries, dropping the oldest.
func (d *Database) PurgeLog(ctx context.Context, maxEntries int) error {
	_, err := d.write.ExecContext(ctx, `
		DELETE FROM log
		WHERE id NOT IN (SELECT id FROM log ORDER BY id DESC LIMIT ?)`,
		maxEntries)
	if err != nil {
		return fmt.Errorf("purging log entries: %w", err)
	}
	return nil
}
