// Package storage persists the pending-reminder collection between the
// ingest and delivery passes. Both drivers use whole-read/whole-write
// semantics: a run loads the entire collection, computes a new one, and
// writes it back atomically from the program's point of view.
package storage

import (
	"context"
	"time"

	"github.com/APerson241/RemindMeBot/internal/remind"
)

// Config configures the reminder store.
//
// Driver values:
//   - "file": JSON file of positional reminder tuples
//   - "sqlite": SQLite database file (build with -tags sqlite)
type Config struct {
	Driver string
	Path   string
	// TimeFormat is the layout request timestamps are stored in; it must be
	// the form the delivery template embeds.
	TimeFormat string
	// BusyTimeout applies to sqlite only; 0 means the driver default.
	BusyTimeout time.Duration
}

// Store is the reminder collection as seen by the two passes.
type Store interface {
	Load(ctx context.Context) ([]remind.PendingReminder, error)
	Save(ctx context.Context, reminders []remind.PendingReminder) error
	Close() error
}
