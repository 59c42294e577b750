package remind

import (
	"context"
	"errors"
	"strings"

	"github.com/APerson241/RemindMeBot/internal/logx"
)

// ErrAuthMismatch reports that the authenticated identity is not the
// configured bot. Entry points exit with a distinct status on it.
var ErrAuthMismatch = errors.New("authenticated identity mismatch")

// Scheduler turns mention events into pending reminders.
type Scheduler struct {
	platform  Platform
	cfg       Config
	extractor *Extractor
	log       logx.Logger
}

func NewScheduler(platform Platform, cfg Config, log logx.Logger) *Scheduler {
	return &Scheduler{
		platform:  platform,
		cfg:       cfg,
		extractor: NewExtractor(cfg.BotName),
		log:       log,
	}
}

// Schedule processes one notification event into zero or more pending
// reminders, one per line of the source revision that asked for one.
//
// The event alone does not point at a specific line, so the revision's lines
// are filtered by containment: the line that generated the mention holds the
// bot's name, the requester's name, and the event timestamp in signature
// form. Lines whose duration fails to parse are skipped, not fatal; a slot
// already in the past drops the reminder entirely.
func (s *Scheduler) Schedule(ctx context.Context, ev Event) ([]PendingReminder, error) {
	if ev.Type != "mention" {
		return nil, nil
	}

	text, err := s.platform.Revision(ctx, ev.RevisionID)
	if err != nil {
		return nil, err
	}
	idx := IndexSections(text)
	stamp := ev.Timestamp.UTC().Format(s.cfg.timeFormat())

	var out []PendingReminder
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, s.cfg.BotName) ||
			!strings.Contains(line, ev.Agent) ||
			!strings.Contains(line, stamp) {
			continue
		}

		expr, note := s.extractor.Extract(line, ev.Agent)
		dur, err := ParseDuration(expr)
		if err != nil {
			s.log.Debug("skipping line with unparseable duration",
				logx.String("page", ev.Page), logx.String("expr", expr))
			continue
		}

		deliverAt := Bucket(ev.Timestamp.Add(dur), s.cfg.resolution())
		if !deliverAt.After(s.cfg.now()) {
			s.log.Debug("dropping reminder slotted in the past",
				logx.String("page", ev.Page), logx.Time("slot", deliverAt))
			continue
		}

		loc := Location{Page: ev.Page}
		if title, ok := idx.Lookup(line); ok {
			loc.Section = title
		}

		out = append(out, PendingReminder{
			Requester:   ev.Agent,
			Location:    loc,
			RequestedAt: ev.Timestamp,
			DeliverAt:   deliverAt,
			Note:        note,
		})
	}
	return out, nil
}
