package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/APerson241/RemindMeBot/internal/logx"
	"github.com/APerson241/RemindMeBot/internal/remind"
)

// fileStore keeps the collection as a JSON array of positional 5-tuples:
//
//	[requester, location, requestedAt, deliverAt, note]
//
// requestedAt uses the signature timestamp format (the form the delivery
// template embeds); deliverAt is RFC 3339 UTC.
type fileStore struct {
	path       string
	timeFormat string
	log        logx.Logger
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}
	return &fileStore{path: cfg.Path, timeFormat: cfg.TimeFormat, log: log}, nil
}

func (s *fileStore) Close() error { return nil }

func (s *fileStore) Load(ctx context.Context) ([]remind.PendingReminder, error) {
	_ = ctx
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("reminder store %s: %w", s.path, err)
	}

	reminders := make([]remind.PendingReminder, 0, len(rows))
	for i, row := range rows {
		r, err := s.decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("reminder store %s: record %d: %w", s.path, i, err)
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

func (s *fileStore) Save(ctx context.Context, reminders []remind.PendingReminder) error {
	_ = ctx
	rows := make([][]string, 0, len(reminders))
	for _, r := range reminders {
		rows = append(rows, s.encodeRow(r))
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	// Write-then-rename so a crashed run never leaves a torn store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *fileStore) encodeRow(r remind.PendingReminder) []string {
	return []string{
		r.Requester,
		r.Location.String(),
		r.RequestedAt.UTC().Format(s.timeFormat),
		r.DeliverAt.UTC().Format(time.RFC3339),
		r.Note,
	}
}

func (s *fileStore) decodeRow(row []string) (remind.PendingReminder, error) {
	if len(row) != 5 {
		return remind.PendingReminder{}, fmt.Errorf("expected 5 fields, got %d", len(row))
	}
	requestedAt, err := time.ParseInLocation(s.timeFormat, row[2], time.UTC)
	if err != nil {
		return remind.PendingReminder{}, fmt.Errorf("requested_at: %w", err)
	}
	deliverAt, err := time.Parse(time.RFC3339, row[3])
	if err != nil {
		return remind.PendingReminder{}, fmt.Errorf("deliver_at: %w", err)
	}
	page, section, _ := strings.Cut(row[1], "#")
	return remind.PendingReminder{
		Requester:   row[0],
		Location:    remind.Location{Page: page, Section: section},
		RequestedAt: requestedAt,
		DeliverAt:   deliverAt.UTC(),
		Note:        row[4],
	}, nil
}
