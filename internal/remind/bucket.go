package remind

import "time"

// Bucket snaps a timestamp onto the delivery grid: one resolution period
// forward, then minutes and seconds zeroed.
//
// It is not idempotent: re-applying it pushes the slot a full period later.
// Ingest applies it once to request+duration to compute the eventual slot;
// delivery applies it once to the current instant to compute "what slot is
// it now". Never compose the two.
func Bucket(t time.Time, resolution time.Duration) time.Time {
	t = t.Add(resolution)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
