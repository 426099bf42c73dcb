// Package store archives fetched date series in a local SQLite database so
// history outlives the API's day window.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"

	"github.com/s0up4200/cookie/cookie"
)

// Kind names an archived series
type Kind string

const (
	KindMessages Kind = "msg_activity"
	KindVoice    Kind = "voice_activity"
	KindMembers  Kind = "member_count"
)

// Key identifies one archived series. UserID is 0 for guild-wide series.
type Key struct {
	GuildID int64
	UserID  int64
	Kind    Kind
}

// Store is the series archive.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the archive at path and initializes the schema.
func Open(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	s := &Store{db: db, path: path, now: time.Now}

	if err := s.configure(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to configure store: %w", err)
	}

	if err := s.createSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (s *Store) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS series (
		guild_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL DEFAULT 0,
		kind TEXT NOT NULL,
		day TEXT NOT NULL,
		count INTEGER NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (guild_id, user_id, kind, day)
	);
	CREATE INDEX IF NOT EXISTS idx_series_guild_kind ON series(guild_id, kind);
	`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// SaveSeries upserts every day of series under key and returns the number
// of days written. Days already archived take the new count.
func (s *Store) SaveSeries(ctx context.Context, key Key, series *cookie.DateSeries) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO series (guild_id, user_id, kind, day, count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (guild_id, user_id, kind, day)
		DO UPDATE SET count = excluded.count, fetched_at = excluded.fetched_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := s.now().UTC().Format(time.RFC3339)
	written := 0
	var execErr error
	series.Each(func(d cookie.Date, count int64) bool {
		if _, execErr = stmt.ExecContext(ctx, key.GuildID, key.UserID, string(key.Kind), d.String(), count, fetchedAt); execErr != nil {
			execErr = fmt.Errorf("failed to save %s for %s: %w", key.Kind, d, execErr)
			return false
		}
		written++
		return true
	})
	if execErr != nil {
		return 0, execErr
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit series: %w", err)
	}
	return written, nil
}

// LoadSeries returns the archived series for key ordered by day. An
// unknown key yields an empty series.
func (s *Store) LoadSeries(ctx context.Context, key Key) (*cookie.DateSeries, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, count FROM series
		WHERE guild_id = ? AND user_id = ? AND kind = ?
		ORDER BY day`, key.GuildID, key.UserID, string(key.Kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	series := cookie.NewDateSeries()
	for rows.Next() {
		var (
			day   string
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		d, err := cookie.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("corrupt day in store: %w", err)
		}
		series.Set(d, count)
	}

	return series, rows.Err()
}

// Kinds lists the kinds archived for a guild, with the users they belong to
func (s *Store) Kinds(ctx context.Context, guildID int64) ([]Key, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT user_id, kind FROM series
		WHERE guild_id = ?
		ORDER BY user_id, kind`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query kinds: %w", err)
	}
	defer rows.Close()

	var keys []Key
	for rows.Next() {
		key := Key{GuildID: guildID}
		var kind string
		if err := rows.Scan(&key.UserID, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan kind row: %w", err)
		}
		key.Kind = Kind(kind)
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
