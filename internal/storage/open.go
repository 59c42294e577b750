package storage

import (
	"errors"
	"strings"

	"github.com/APerson241/RemindMeBot/internal/logx"
	"github.com/APerson241/RemindMeBot/internal/remind"
)

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("storage.path is required")
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = remind.SignatureTimeFormat
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
