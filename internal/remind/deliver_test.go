package remind

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/APerson241/RemindMeBot/internal/logx"
)

func TestDueNowExactSlotOnly(t *testing.T) {
	reminders := []PendingReminder{
		{Requester: "Alice", DeliverAt: at(10, 0)},
		{Requester: "Bob", DeliverAt: at(11, 0)},
	}

	// 09:35 buckets to 10:00: only the first reminder is due.
	due := DueNow(reminders, at(9, 35), DefaultResolution)
	if len(due) != 1 || due[0].Requester != "Alice" {
		t.Fatalf("due = %+v, want only Alice", due)
	}

	// 08:50 buckets to 09:00: nothing matches.
	if due := DueNow(reminders, at(8, 50), DefaultResolution); len(due) != 0 {
		t.Fatalf("expected nothing due, got %+v", due)
	}
}

func TestDeliverPostsAndPrunes(t *testing.T) {
	ts := at(8, 0)
	reminders := []PendingReminder{
		{Requester: "Alice", Location: Location{Page: "Talk:X", Section: "Sec"}, RequestedAt: ts, DeliverAt: at(10, 0), Note: "close it"},
		{Requester: "Bob", Location: Location{Page: "Talk:Y"}, RequestedAt: ts, DeliverAt: at(12, 0), Note: "later"},
	}
	platform := &fakePlatform{}

	cfg := testCfg
	cfg.Now = fixedClock(at(9, 35))
	d := NewDeliverer(platform, cfg, logx.Nop())

	remaining, delivered, err := d.Deliver(context.Background(), reminders)
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if delivered != 1 {
		t.Fatalf("delivered = %d", delivered)
	}
	if len(remaining) != 1 || remaining[0].Requester != "Bob" {
		t.Fatalf("remaining = %+v, want only Bob", remaining)
	}

	if len(platform.appends) != 1 {
		t.Fatalf("appends = %d", len(platform.appends))
	}
	call := platform.appends[0]
	if call.title != "User talk:Alice" {
		t.Fatalf("title = %q", call.title)
	}
	if call.summary != "Bot delivering a reminder about [[Talk:X#Sec]]" {
		t.Fatalf("summary = %q", call.summary)
	}
	for _, want := range []string{"{{User:Bot/template", "|page=Talk:X#Sec", "|text=close it", "|time=08:00, 1 January 2024"} {
		if !strings.Contains(call.text, want) {
			t.Fatalf("posted text %q missing %q", call.text, want)
		}
	}
}

func TestDeliverKeepsFailedReminderPending(t *testing.T) {
	reminders := []PendingReminder{
		{Requester: "Alice", DeliverAt: at(10, 0)},
		{Requester: "Bob", DeliverAt: at(12, 0)},
	}
	platform := &fakePlatform{appendErr: errors.New("edit conflict")}

	cfg := testCfg
	cfg.Now = fixedClock(at(9, 40))
	d := NewDeliverer(platform, cfg, logx.Nop())

	remaining, delivered, err := d.Deliver(context.Background(), reminders)
	if err == nil {
		t.Fatal("expected send failure to propagate")
	}
	if delivered != 0 {
		t.Fatalf("delivered = %d", delivered)
	}
	if len(remaining) != 2 {
		t.Fatalf("failed reminder must stay pending, remaining = %+v", remaining)
	}
}

