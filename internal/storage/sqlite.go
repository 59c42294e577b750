//go:build sqlite
// +build sqlite

package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/APerson241/RemindMeBot/internal/logx"
	"github.com/APerson241/RemindMeBot/internal/remind"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db         *sql.DB
	timeFormat string
	log        logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, timeFormat: cfg.TimeFormat, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func (s *sqliteStore) Load(ctx context.Context) ([]remind.PendingReminder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT requester, location, requested_at, deliver_at, note FROM reminders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []remind.PendingReminder
	for rows.Next() {
		var requester, location, requestedAt, deliverAt, note string
		if err := rows.Scan(&requester, &location, &requestedAt, &deliverAt, &note); err != nil {
			return nil, err
		}
		rat, err := time.ParseInLocation(s.timeFormat, requestedAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("reminder store: requested_at: %w", err)
		}
		dat, err := time.Parse(time.RFC3339, deliverAt)
		if err != nil {
			return nil, fmt.Errorf("reminder store: deliver_at: %w", err)
		}
		page, section, _ := strings.Cut(location, "#")
		out = append(out, remind.PendingReminder{
			Requester:   requester,
			Location:    remind.Location{Page: page, Section: section},
			RequestedAt: rat,
			DeliverAt:   dat.UTC(),
			Note:        note,
		})
	}
	return out, rows.Err()
}

// Save replaces the whole collection in one transaction.
func (s *sqliteStore) Save(ctx context.Context, reminders []remind.PendingReminder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return err
	}
	for _, r := range reminders {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reminders(requester, location, requested_at, deliver_at, note) VALUES(?,?,?,?,?)`,
			r.Requester,
			r.Location.String(),
			r.RequestedAt.UTC().Format(s.timeFormat),
			r.DeliverAt.UTC().Format(time.RFC3339),
			r.Note,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
