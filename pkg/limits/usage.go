package limits

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// UsageStore persists per-provider daily request counts in SQLite, so that
// several runs on the same day draw from a single budget. Days roll over at
// midnight UTC, matching when providers reset daily quotas.
type UsageStore struct {
	db *sql.DB

	// now is the clock used to derive the current day; replaced in tests.
	now func() time.Time
}

const usageSchema = `
CREATE TABLE IF NOT EXISTS daily_usage (
	provider TEXT NOT NULL,
	day      TEXT NOT NULL,
	requests INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (provider, day)
);
`

// OpenUsageStore opens (creating if necessary) the usage database at path.
func OpenUsageStore(path string) (*UsageStore, error) {
	if path == "" {
		return nil, fmt.Errorf("usage db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage database: %w", err)
	}

	if _, err := db.Exec(usageSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize usage schema: %w", err)
	}

	slog.Debug("usage store opened", "path", path)

	return &UsageStore{
		db:  db,
		now: time.Now,
	}, nil
}

// CountToday returns the number of requests recorded for the provider today.
func (s *UsageStore) CountToday(ctx context.Context, provider string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT requests FROM daily_usage WHERE provider = ? AND day = ?`,
		provider, s.today(),
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query usage: %w", err)
	}
	return count, nil
}

// RecordRequest increments today's request count for the provider.
func (s *UsageStore) RecordRequest(ctx context.Context, provider string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_usage (provider, day, requests) VALUES (?, ?, 1)
		 ON CONFLICT (provider, day) DO UPDATE SET requests = requests + 1`,
		provider, s.today(),
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// Prune removes usage rows older than the retention window. Old rows are
// harmless but the ledger file should not grow forever.
func (s *UsageStore) Prune(ctx context.Context, retain time.Duration) error {
	cutoff := s.now().UTC().Add(-retain).Format("2006-01-02")
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM daily_usage WHERE day < ?`, cutoff,
	)
	if err != nil {
		return fmt.Errorf("failed to prune usage: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *UsageStore) Close() error {
	return s.db.Close()
}

func (s *UsageStore) today() string {
	return s.now().UTC().Format("2006-01-02")
}
