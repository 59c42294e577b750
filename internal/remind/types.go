package remind

import (
	"context"
	"time"
)

// SignatureTimeFormat renders timestamps the way discussion signatures do,
// e.g. "12:00, 1 January 2024". It is also the form embedded in the delivery
// template, so the store keeps request timestamps in it.
const SignatureTimeFormat = "15:04, 2 January 2006"

// DefaultResolution is the scheduling grid shared by the ingest and delivery
// passes. The external cadence that triggers the two passes must match it.
const DefaultResolution = 30 * time.Minute

// Config carries the immutable knobs the core components share.
type Config struct {
	// BotName is the expected authenticated identity and the name users ping.
	BotName string
	// Resolution is the delivery grid period.
	Resolution time.Duration
	// TimeFormat is the signature timestamp layout used on the wiki.
	TimeFormat string
	// Now is the clock source; nil means time.Now. Tests pin it.
	Now func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Config) resolution() time.Duration {
	if c.Resolution > 0 {
		return c.Resolution
	}
	return DefaultResolution
}

func (c Config) timeFormat() string {
	if c.TimeFormat != "" {
		return c.TimeFormat
	}
	return SignatureTimeFormat
}

// Location points at the discussion that asked for a reminder: the source
// page plus the attributed section, which may be absent.
type Location struct {
	Page    string
	Section string
}

func (l Location) String() string {
	if l.Section == "" {
		return l.Page
	}
	return l.Page + "#" + l.Section
}

// PendingReminder is one stored reminder awaiting delivery. DeliverAt is
// always grid-aligned and strictly later than RequestedAt at creation time.
type PendingReminder struct {
	Requester   string
	Location    Location
	RequestedAt time.Time
	DeliverAt   time.Time
	Note        string
}

// Event is one notification from the host platform feed.
type Event struct {
	Type       string
	Agent      string // username that triggered the notification
	Page       string // full title of the page it happened on
	RevisionID int64
	Timestamp  time.Time
}

// Platform is the host content platform as seen by the two passes.
type Platform interface {
	// Identity returns the authenticated username.
	Identity(ctx context.Context) (string, error)
	// Notifications returns the pending events for the authenticated user.
	Notifications(ctx context.Context) ([]Event, error)
	// Revision returns the page text as of the given revision.
	Revision(ctx context.Context, revID int64) (string, error)
	// AppendToPage appends text to a page with an edit summary.
	AppendToPage(ctx context.Context, title, text, summary string) error
}
