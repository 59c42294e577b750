// Package app wires the core components into the two batch passes (ingest,
// delivery) and the daemon that triggers them on the grid cadence.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/APerson241/RemindMeBot/internal/config"
	"github.com/APerson241/RemindMeBot/internal/logx"
	"github.com/APerson241/RemindMeBot/internal/remind"
	"github.com/APerson241/RemindMeBot/internal/storage"
)

type App struct {
	cfg      *config.Config
	cfgPath  string
	log      logx.Logger
	platform remind.Platform
	store    storage.Store
	now      func() time.Time
}

func New(cfg *config.Config, cfgPath string, log logx.Logger, platform remind.Platform, store storage.Store) *App {
	return &App{cfg: cfg, cfgPath: cfgPath, log: log, platform: platform, store: store, now: time.Now}
}

func (a *App) remindConfig() remind.Config {
	return remind.Config{
		BotName:    a.cfg.Bot.Name,
		Resolution: a.cfg.ResolutionValue(),
		TimeFormat: a.cfg.Bot.TimeFormat,
		Now:        a.now,
	}
}

// checkIdentity verifies the authenticated identity is the configured bot.
func (a *App) checkIdentity(ctx context.Context) error {
	name, err := a.platform.Identity(ctx)
	if err != nil {
		return err
	}
	if name != a.cfg.Bot.Name {
		return fmt.Errorf("%w: logged in as %q, expected %q",
			remind.ErrAuthMismatch, name, a.cfg.Bot.Name)
	}
	a.log.Info("identity confirmed", logx.String("user", name))
	return nil
}

// RunIngest reads the notification feed and appends the resulting pending
// reminders to the store.
func (a *App) RunIngest(ctx context.Context) error {
	if err := a.checkIdentity(ctx); err != nil {
		return err
	}

	events, err := a.platform.Notifications(ctx)
	if err != nil {
		return err
	}

	scheduler := remind.NewScheduler(a.platform, a.remindConfig(), a.log)
	var added []remind.PendingReminder
	for _, ev := range events {
		reminders, err := scheduler.Schedule(ctx, ev)
		if err != nil {
			return err
		}
		added = append(added, reminders...)
	}

	if len(added) == 0 {
		a.log.Info("no new reminders")
		return nil
	}

	existing, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, append(existing, added...)); err != nil {
		return err
	}
	a.log.Info("reminders written", logx.Int("new", len(added)), logx.Int("total", len(existing)+len(added)))
	return nil
}

// RunDeliver posts every reminder due at the current slot and persists the
// store without the delivered records, so a rerun at the same slot is a
// no-op. If a send fails mid-batch the delivered prefix is still pruned
// before the error propagates.
func (a *App) RunDeliver(ctx context.Context) error {
	if err := a.checkIdentity(ctx); err != nil {
		return err
	}

	reminders, err := a.store.Load(ctx)
	if err != nil {
		return err
	}

	deliverer := remind.NewDeliverer(a.platform, a.remindConfig(), a.log)
	remaining, delivered, sendErr := deliverer.Deliver(ctx, reminders)
	if delivered > 0 {
		if err := a.store.Save(ctx, remaining); err != nil {
			return err
		}
	}
	if sendErr != nil {
		return sendErr
	}
	if delivered == 0 {
		a.log.Info("no sendable reminders")
		return nil
	}
	a.log.Info("reminders delivered", logx.Int("count", delivered), logx.Int("pending", len(remaining)))
	return nil
}
