package remind

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/APerson241/RemindMeBot/internal/logx"
)

type appendCall struct {
	title   string
	text    string
	summary string
}

type fakePlatform struct {
	identity  string
	events    []Event
	revisions map[int64]string
	appends   []appendCall
	appendErr error
}

func (f *fakePlatform) Identity(ctx context.Context) (string, error) {
	return f.identity, nil
}

func (f *fakePlatform) Notifications(ctx context.Context) ([]Event, error) {
	return f.events, nil
}

func (f *fakePlatform) Revision(ctx context.Context, revID int64) (string, error) {
	text, ok := f.revisions[revID]
	if !ok {
		return "", fmt.Errorf("no revision %d", revID)
	}
	return text, nil
}

func (f *fakePlatform) AppendToPage(ctx context.Context, title, text, summary string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends = append(f.appends, appendCall{title: title, text: text, summary: summary})
	return nil
}

var testCfg = Config{BotName: "Bot", Resolution: DefaultResolution, TimeFormat: SignatureTimeFormat}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScheduleMention(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 9, 10, 0, 0, time.UTC)
	page := "== RFC on things ==\n" +
		"* Hello {{ping|Bot}}, in 20 minutes, close the RFC --[[User:Alice]] 09:10, 1 January 2024 (UTC)\n"
	platform := &fakePlatform{revisions: map[int64]string{42: page}}

	cfg := testCfg
	cfg.Now = fixedClock(ts.Add(5 * time.Minute))
	s := NewScheduler(platform, cfg, logx.Nop())

	got, err := s.Schedule(context.Background(), Event{
		Type: "mention", Agent: "Alice", Page: "Wikipedia:Village pump", RevisionID: 42, Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(got))
	}
	r := got[0]
	if r.Requester != "Alice" {
		t.Fatalf("requester = %q", r.Requester)
	}
	if r.Location.Page != "Wikipedia:Village pump" || r.Location.Section != "RFC on things" {
		t.Fatalf("location = %+v", r.Location)
	}
	want := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	if !r.DeliverAt.Equal(want) {
		t.Fatalf("deliverAt = %v, want %v", r.DeliverAt, want)
	}
	if !r.RequestedAt.Equal(ts) {
		t.Fatalf("requestedAt = %v", r.RequestedAt)
	}
	if r.Note != "close the RFC" {
		t.Fatalf("note = %q", r.Note)
	}
}

func TestScheduleIgnoresNonMention(t *testing.T) {
	platform := &fakePlatform{revisions: map[int64]string{}}
	s := NewScheduler(platform, testCfg, logx.Nop())

	got, err := s.Schedule(context.Background(), Event{Type: "thank", Agent: "Alice", RevisionID: 7})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no reminders, got %d", len(got))
	}
}

func TestScheduleDropsPastSlot(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 9, 10, 0, 0, time.UTC)
	page := "== Old thread ==\n" +
		"* Hello {{ping|Bot}}, in 20 minutes, too late --[[User:Alice]] 09:10, 1 January 2024 (UTC)\n"
	platform := &fakePlatform{revisions: map[int64]string{42: page}}

	cfg := testCfg
	cfg.Now = fixedClock(ts.Add(3 * time.Hour))
	s := NewScheduler(platform, cfg, logx.Nop())

	got, err := s.Schedule(context.Background(), Event{
		Type: "mention", Agent: "Alice", Page: "Talk:Old", RevisionID: 42, Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected past-slot reminder to be dropped, got %d", len(got))
	}
}

func TestScheduleSkipsUnparseableLine(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 9, 10, 0, 0, time.UTC)
	page := "== Thread ==\n" +
		"* Hello {{ping|Bot}}, whenever you like, vague --[[User:Alice]] 09:10, 1 January 2024 (UTC)\n" +
		"* Hello {{ping|Bot}}, in 2 hours, concrete --[[User:Alice]] 09:10, 1 January 2024 (UTC)\n"
	platform := &fakePlatform{revisions: map[int64]string{42: page}}

	cfg := testCfg
	cfg.Now = fixedClock(ts)
	s := NewScheduler(platform, cfg, logx.Nop())

	got, err := s.Schedule(context.Background(), Event{
		Type: "mention", Agent: "Alice", Page: "Talk:Thread", RevisionID: 42, Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the parseable line to survive, got %d", len(got))
	}
	if got[0].Note != "concrete" {
		t.Fatalf("note = %q", got[0].Note)
	}
}

func TestScheduleContainmentFilter(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 9, 10, 0, 0, time.UTC)
	page := "== Thread ==\n" +
		"* An unrelated line mentioning Bot only.\n" +
		"* Hello {{ping|Bot}}, in 1 day, sign here --[[User:Alice]] 09:10, 1 January 2024 (UTC)\n" +
		"* Hello {{ping|Bot}}, in 1 day, stale line --[[User:Alice]] 08:00, 1 January 2024 (UTC)\n"
	platform := &fakePlatform{revisions: map[int64]string{42: page}}

	cfg := testCfg
	cfg.Now = fixedClock(ts)
	s := NewScheduler(platform, cfg, logx.Nop())

	got, err := s.Schedule(context.Background(), Event{
		Type: "mention", Agent: "Alice", Page: "Talk:Thread", RevisionID: 42, Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly the stamped line, got %d reminders", len(got))
	}
	if got[0].Note != "sign here" {
		t.Fatalf("note = %q", got[0].Note)
	}
}
