package remind

import "testing"

func TestExtractTemplatePing(t *testing.T) {
	e := NewExtractor("Bot")
	line := "* Hello {{ping|Bot}}, remind me in 3 days, close the RFC --[[User:Alice]] 12:00, 1 January 2024 (UTC)"
	expr, note := e.Extract(line, "Alice")
	if expr != "remind me in 3 days" {
		t.Fatalf("duration expr = %q", expr)
	}
	if note != "close the RFC" {
		t.Fatalf("note = %q", note)
	}
	if _, err := ParseDuration(expr); err != nil {
		t.Fatalf("extracted expr %q should parse: %v", expr, err)
	}
}

func TestExtractUserLinkPing(t *testing.T) {
	e := NewExtractor("Bot")
	line := ":: Hey [[User:Bot|Bot]], in 3 days, close the RFC --[[User:Alice|Alice]] 12:00, 1 January 2024 (UTC)"
	expr, note := e.Extract(line, "Alice")
	if expr != "in 3 days" {
		t.Fatalf("duration expr = %q", expr)
	}
	if note != "close the RFC" {
		t.Fatalf("note = %q", note)
	}
}

func TestExtractNoComma(t *testing.T) {
	e := NewExtractor("Bot")
	line := "* So [[User:Bot]] in 2 hours --[[User:Alice]] 09:10, 1 January 2024 (UTC)"
	expr, note := e.Extract(line, "Alice")
	if expr != "in 2 hours" {
		t.Fatalf("duration expr = %q", expr)
	}
	if note != "" {
		t.Fatalf("note = %q, want empty", note)
	}
}

func TestExtractMissingPingDegrades(t *testing.T) {
	// No recognizable mention: the ping strip is a no-op and the garbage
	// remainder is rejected downstream by the duration parser, not here.
	e := NewExtractor("Bot")
	line := "* just a stray comment --[[User:Alice]] 12:00, 1 January 2024 (UTC)"
	expr, note := e.Extract(line, "Alice")
	if expr != "just a stray comment" {
		t.Fatalf("duration expr = %q", expr)
	}
	if note != "" {
		t.Fatalf("note = %q, want empty", note)
	}
	if _, err := ParseDuration(expr); err == nil {
		t.Fatal("garbage remainder should not parse as a duration")
	}
}

func TestExtractMissingSignatureDegrades(t *testing.T) {
	e := NewExtractor("Bot")
	line := "* Hi {{re|Bot}}, 45m, kettle"
	expr, note := e.Extract(line, "Alice")
	if expr != "45m" {
		t.Fatalf("duration expr = %q", expr)
	}
	if note != "kettle" {
		t.Fatalf("note = %q", note)
	}
}

func TestExtractTrimsLeadTrailPunctuation(t *testing.T) {
	e := NewExtractor("Bot")
	line := `* "Please" [[User:Bot|ping]]: -- '1 week, archive this' --[[User:Alice]] 12:00, 1 January 2024 (UTC)`
	expr, note := e.Extract(line, "Alice")
	if expr != "1 week" {
		t.Fatalf("duration expr = %q", expr)
	}
	if note != "archive this" {
		t.Fatalf("note = %q", note)
	}
}
