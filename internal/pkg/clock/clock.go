package clock

import "time"

// Clock supplies the current instant. Services that classify bookings against
// "now" take a Clock so tests can pin the instant.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock that always returns the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
