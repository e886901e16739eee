package booking

import (
	"strings"
	"time"
)

// State is the query-side filter bucket for listing bookings. It is distinct
// from Status: WAITING and REJECTED select on status, the time buckets
// classify the booking window against a single "now" instant.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates a raw state parameter. An empty value defaults to ALL;
// anything outside the enumerated set is a hard error, never an empty result.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch s := State(strings.ToUpper(raw)); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", ErrUnknownState
	}
}

// Matches reports whether the booking falls into this bucket at the given
// instant. CURRENT uses strict inequalities on both ends, so a booking set
// with distinct start/end instants is partitioned by exactly one of
// CURRENT, PAST and FUTURE. The repository's SQL conditions mirror this
// predicate; both must be evaluated against one now per query.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}
