package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/APerson241/RemindMeBot/internal/app"
	"github.com/APerson241/RemindMeBot/internal/config"
	"github.com/APerson241/RemindMeBot/internal/logx"
	"github.com/APerson241/RemindMeBot/internal/remind"
	"github.com/APerson241/RemindMeBot/internal/storage"
	"github.com/APerson241/RemindMeBot/internal/wiki"
)

const (
	exitFatal        = 1
	exitAuthMismatch = 2
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file")
	flag.Parse()

	command := flag.Arg(0)
	switch command {
	case "ingest", "deliver", "run":
	default:
		fmt.Fprintln(os.Stderr, "usage: remindmebot [-config path] <ingest|deliver|run>")
		os.Exit(exitFatal)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfgPath, command); err != nil {
		if errors.Is(err, remind.ErrAuthMismatch) {
			os.Exit(exitAuthMismatch)
		}
		os.Exit(exitFatal)
	}
}

func run(ctx context.Context, cfgPath, command string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		return err
	}

	log, err := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		return err
	}
	defer log.Close()

	client, err := wiki.NewClient(wiki.Config{
		APIURL:     cfg.Site.APIURL,
		Username:   cfg.Site.Username,
		Password:   cfg.Site.Password,
		RatePerSec: cfg.Site.RatePerSec,
	}, log)
	if err != nil {
		log.Error("wiki client init failed", logx.Err(err))
		return err
	}
	if err := client.Login(ctx); err != nil {
		log.Error("login failed", logx.Err(err))
		return err
	}

	store, err := storage.Open(storage.Config{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		TimeFormat:  cfg.Bot.TimeFormat,
		BusyTimeout: cfg.BusyTimeoutValue(),
	}, log)
	if err != nil {
		log.Error("store open failed", logx.Err(err))
		return err
	}
	defer store.Close()

	a := app.New(cfg, cfgPath, log, client, store)

	switch command {
	case "ingest":
		err = a.RunIngest(ctx)
	case "deliver":
		err = a.RunDeliver(ctx)
	case "run":
		err = a.RunDaemon(ctx)
	}
	if err != nil {
		log.Error("run failed", logx.String("command", command), logx.Err(err))
	}
	return err
}
