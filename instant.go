package replica

import "time"

// Instant is a mutable point in time.
type Instant struct {
	Attributes
	t time.Time
}

// NewInstant creates an instant at t.
func NewInstant(t time.Time) *Instant {
	return &Instant{t: t}
}

// InstantFromMillis creates an instant from milliseconds since the Unix epoch.
func InstantFromMillis(ms int64) *Instant {
	return &Instant{t: time.UnixMilli(ms)}
}

// Time returns the absolute time value.
func (i *Instant) Time() time.Time {
	return i.t
}

// UnixMilli returns milliseconds since the Unix epoch.
func (i *Instant) UnixMilli() int64 {
	return i.t.UnixMilli()
}

// SetUnixMilli moves the instant to ms milliseconds since the Unix epoch,
// keeping its location.
func (i *Instant) SetUnixMilli(ms int64) {
	i.t = time.UnixMilli(ms).In(i.t.Location())
}

// Year returns the calendar year in the instant's location.
func (i *Instant) Year() int {
	return i.t.Year()
}

// SetYear changes the calendar year, keeping month, day and clock.
func (i *Instant) SetYear(year int) {
	t := i.t
	i.t = time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (i *Instant) String() string {
	return i.t.Format(time.RFC3339Nano)
}
