package remind

import (
	"context"
	"fmt"
	"time"

	"github.com/APerson241/RemindMeBot/internal/logx"
)

// DueNow selects the reminders whose slot equals the current bucket exactly.
// The bucket is computed once; equality, not a range, so the delivery cadence
// must match the grid or a slot's reminders are never retried.
func DueNow(reminders []PendingReminder, now time.Time, resolution time.Duration) []PendingReminder {
	slot := Bucket(now, resolution)
	var due []PendingReminder
	for _, r := range reminders {
		if r.DeliverAt.Equal(slot) {
			due = append(due, r)
		}
	}
	return due
}

// Deliverer posts due reminders to requesters' talk pages.
type Deliverer struct {
	platform Platform
	cfg      Config
	log      logx.Logger
}

func NewDeliverer(platform Platform, cfg Config, log logx.Logger) *Deliverer {
	return &Deliverer{platform: platform, cfg: cfg, log: log}
}

// Deliver sends every reminder due at the current slot and returns the set
// still pending, which the caller must persist in the same operation so a
// rerun at the same slot cannot resend. A platform failure aborts the run;
// the failed reminder and everything after it stay pending.
func (d *Deliverer) Deliver(ctx context.Context, reminders []PendingReminder) (remaining []PendingReminder, delivered int, err error) {
	slot := Bucket(d.cfg.now(), d.cfg.resolution())
	remaining = make([]PendingReminder, 0, len(reminders))

	for i, r := range reminders {
		if !r.DeliverAt.Equal(slot) {
			remaining = append(remaining, r)
			continue
		}
		if err := d.send(ctx, r); err != nil {
			return append(remaining, reminders[i:]...), delivered, err
		}
		delivered++
		d.log.Info("reminder delivered",
			logx.String("requester", r.Requester),
			logx.String("location", r.Location.String()))
	}
	return remaining, delivered, nil
}

func (d *Deliverer) send(ctx context.Context, r PendingReminder) error {
	text := fmt.Sprintf("\n\n{{User:%s/template|time=%s|page=%s|text=%s}}",
		d.cfg.BotName,
		r.RequestedAt.UTC().Format(d.cfg.timeFormat()),
		r.Location,
		r.Note)
	summary := fmt.Sprintf("Bot delivering a reminder about [[%s]]", r.Location)
	return d.platform.AppendToPage(ctx, "User talk:"+r.Requester, text, summary)
}
