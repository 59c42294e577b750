package remind

import (
	"errors"
	"testing"
	"time"
)

func TestParseDurationVocabulary(t *testing.T) {
	cases := []struct {
		expr string
		want time.Duration
	}{
		{"3 days", 72 * time.Hour},
		{"45m", 45 * time.Minute},
		{"1 week", 7 * 24 * time.Hour},
		{"in 20 minutes", 20 * time.Minute},
		{"after 2 hours", 2 * time.Hour},
		{"2h30m", 2*time.Hour + 30*time.Minute},
		{"remind me in 3 days", 72 * time.Hour},
		{"1 day", 24 * time.Hour},
		{"90 seconds", 90 * time.Second},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.expr)
		if err != nil {
			t.Fatalf("ParseDuration(%q): %v", c.expr, err)
		}
		if got != c.want {
			t.Fatalf("ParseDuration(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestParseDurationGarbage(t *testing.T) {
	for _, expr := range []string{"", "   ", "garbage text", "sometime soon", "3 bananas", "days 3"} {
		_, err := ParseDuration(expr)
		if err == nil {
			t.Fatalf("ParseDuration(%q): expected error", expr)
		}
		if !errors.Is(err, ErrDurationParse) {
			t.Fatalf("ParseDuration(%q): error %v is not ErrDurationParse", expr, err)
		}
	}
}
