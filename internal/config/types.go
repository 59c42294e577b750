package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/APerson241/RemindMeBot/internal/remind"
)

// Config is the whole bot configuration. Durations are Go duration strings
// (e.g. "30m", "1h"); Validate parses and caches them.
type Config struct {
	Site    SiteConfig    `json:"site"`
	Bot     BotConfig     `json:"bot"`
	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
	Daemon  DaemonConfig  `json:"daemon,omitempty"`
}

// SiteConfig points at the wiki's Action API.
type SiteConfig struct {
	// APIURL is the api.php endpoint, e.g. "https://en.wikipedia.org/w/api.php".
	APIURL   string `json:"api_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	// RatePerSec caps API calls per second. Defaults to 1.
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

type BotConfig struct {
	// Name is the expected authenticated identity and the name users ping.
	Name string `json:"name"`
	// Resolution is the delivery grid period. Defaults to "30m".
	Resolution string `json:"resolution,omitempty"`
	// TimeFormat is the signature timestamp layout, Go reference-time form.
	// Defaults to the standard signature format.
	TimeFormat string `json:"time_format,omitempty"`

	resolution time.Duration
}

// StorageConfig selects the reminder store backend.
//
// Driver values:
//   - "file": JSON file of positional reminder tuples (default)
//   - "sqlite": SQLite database file (build with -tags sqlite)
type StorageConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // sqlite only

	busyTimeout time.Duration
}

type LoggingConfig struct {
	Level   string          `json:"level,omitempty"`
	Console bool            `json:"console"`
	File    LoggingFileConf `json:"file,omitempty"`
}

type LoggingFileConf struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// DaemonConfig controls the "run" subcommand. CronSpec must fire once per
// resolution period; delivery matches slots by equality, so a missed tick
// means a missed slot.
type DaemonConfig struct {
	// CronSpec is a 5-field cron expression. Defaults to "0,30 * * * *".
	CronSpec string `json:"cron_spec,omitempty"`
	// WatchConfig re-applies the logging level when the config file changes.
	WatchConfig bool `json:"watch_config,omitempty"`
}

// Validate fills defaults and parses duration fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.APIURL) == "" {
		return errors.New("site.api_url is required")
	}
	if strings.TrimSpace(c.Bot.Name) == "" {
		return errors.New("bot.name is required")
	}
	if c.Site.RatePerSec <= 0 {
		c.Site.RatePerSec = 1
	}

	var err error
	c.Bot.resolution, err = parseDurationField("bot.resolution", c.Bot.Resolution, remind.DefaultResolution)
	if err != nil {
		return err
	}
	if c.Bot.TimeFormat == "" {
		c.Bot.TimeFormat = remind.SignatureTimeFormat
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "./reminders.json"
	}
	c.Storage.busyTimeout, err = parseDurationField("storage.busy_timeout", c.Storage.BusyTimeout, 0)
	if err != nil {
		return err
	}

	if c.Daemon.CronSpec == "" {
		c.Daemon.CronSpec = "0,30 * * * *"
	}
	return nil
}

// ResolutionValue returns the parsed delivery grid period.
func (c *Config) ResolutionValue() time.Duration { return c.Bot.resolution }

// BusyTimeoutValue returns the parsed sqlite busy timeout.
func (c *Config) BusyTimeoutValue() time.Duration { return c.Storage.busyTimeout }

func parseDurationField(path, raw string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	if d == 0 {
		return def, nil
	}
	return d, nil
}
