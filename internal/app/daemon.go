package app

import (
	"context"

	sd "github.com/coreos/go-systemd/v22/daemon"
	"github.com/robfig/cron/v3"

	"github.com/APerson241/RemindMeBot/internal/config"
	"github.com/APerson241/RemindMeBot/internal/logx"
)

// RunDaemon triggers the ingest and delivery passes on the configured cron
// cadence until ctx is cancelled. A failed run is logged and the daemon
// waits for the next tick; per-run semantics are unchanged (each run still
// aborts as a whole on fatal errors).
func (a *App) RunDaemon(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(a.cfg.Daemon.CronSpec, func() {
		if err := a.RunIngest(ctx); err != nil {
			a.log.Error("ingest run failed", logx.Err(err))
			return
		}
		if err := a.RunDeliver(ctx); err != nil {
			a.log.Error("delivery run failed", logx.Err(err))
		}
	})
	if err != nil {
		return err
	}

	if a.cfg.Daemon.WatchConfig {
		go func() {
			err := config.Watch(ctx, a.cfgPath, a.log, func(cfg *config.Config) {
				// Only the logging level is safe to change mid-flight;
				// everything else waits for a restart.
				a.log.SetLevel(cfg.Logging.Level)
			})
			if err != nil {
				a.log.Warn("config watch stopped", logx.Err(err))
			}
		}()
	}

	c.Start()
	a.log.Info("daemon started", logx.String("cadence", a.cfg.Daemon.CronSpec))
	if ok, err := sd.SdNotify(false, sd.SdNotifyReady); err != nil {
		a.log.Warn("systemd notify failed", logx.Err(err))
	} else if ok {
		a.log.Debug("systemd notified ready")
	}

	<-ctx.Done()
	<-c.Stop().Done()
	a.log.Info("daemon stopped")
	return nil
}
