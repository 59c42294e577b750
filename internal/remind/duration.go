package remind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// ErrDurationParse reports an expression that resolves to no known unit
// combination. Callers skip the offending line and keep going.
var ErrDurationParse = errors.New("unparseable duration")

var durationUnits = map[string]string{
	"second": "s", "seconds": "s", "sec": "s", "secs": "s",
	"minute": "m", "minutes": "m", "min": "m", "mins": "m",
	"hour": "h", "hours": "h", "hr": "h", "hrs": "h",
	"day": "d", "days": "d",
	"week": "w", "weeks": "w", "wk": "w", "wks": "w",
}

// ParseDuration resolves human duration phrasing ("3 days", "45m",
// "in 1 week") to an exact span. Filler words before the first number
// ("remind me in ...") are ignored; anything unrecognized after it fails.
func ParseDuration(expr string) (time.Duration, error) {
	fields := strings.Fields(strings.ToLower(expr))

	var compact strings.Builder
	pending := "" // a bare number waiting for its unit word
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err == nil {
			if pending != "" {
				return 0, fmt.Errorf("%w: %q", ErrDurationParse, expr)
			}
			pending = f
			continue
		}
		if unit, ok := durationUnits[f]; ok && pending != "" {
			compact.WriteString(pending)
			compact.WriteString(unit)
			pending = ""
			continue
		}
		if pending != "" {
			return 0, fmt.Errorf("%w: %q", ErrDurationParse, expr)
		}
		if compact.Len() == 0 && !strings.ContainsAny(f, "0123456789") {
			// Salutation or filler before the duration proper.
			continue
		}
		// Already-compact chunk like "2h30m"; the parser below validates it.
		compact.WriteString(f)
	}
	if pending != "" || compact.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrDurationParse, expr)
	}

	d, err := str2duration.ParseDuration(compact.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrDurationParse, expr)
	}
	return d, nil
}
