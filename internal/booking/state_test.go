package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("empty defaults to ALL", func(t *testing.T) {
		s, err := ParseState("")
		require.NoError(t, err)
		assert.Equal(t, StateAll, s)
	})

	t.Run("known states parse case-insensitively", func(t *testing.T) {
		for raw, want := range map[string]State{
			"ALL":      StateAll,
			"current":  StateCurrent,
			"Past":     StatePast,
			"FUTURE":   StateFuture,
			"waiting":  StateWaiting,
			"REJECTED": StateRejected,
		} {
			s, err := ParseState(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, s, raw)
		}
	})

	t.Run("unknown state is a hard error", func(t *testing.T) {
		for _, raw := range []string{"UNSUPPORTED", "PASTT", "all "} {
			_, err := ParseState(raw)
			assert.ErrorIs(t, err, ErrUnknownState, raw)
		}
	})
}

func TestStateMatches(t *testing.T) {
	now := time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)

	mk := func(startOffset, endOffset time.Duration, status Status) *Booking {
		return &Booking{
			Start:  now.Add(startOffset),
			End:    now.Add(endOffset),
			Status: status,
		}
	}

	past := mk(-48*time.Hour, -24*time.Hour, StatusApproved)
	current := mk(-time.Hour, time.Hour, StatusApproved)
	future := mk(24*time.Hour, 48*time.Hour, StatusWaiting)
	rejected := mk(72*time.Hour, 96*time.Hour, StatusRejected)

	all := []*Booking{past, current, future, rejected}

	t.Run("ALL matches everything", func(t *testing.T) {
		for _, b := range all {
			assert.True(t, StateAll.Matches(b, now))
		}
	})

	t.Run("time buckets partition the set", func(t *testing.T) {
		buckets := []State{StateCurrent, StatePast, StateFuture}
		for _, b := range all {
			matched := 0
			for _, s := range buckets {
				if s.Matches(b, now) {
					matched++
				}
			}
			assert.Equal(t, 1, matched, "booking %v/%v must fall into exactly one time bucket", b.Start, b.End)
		}
	})

	t.Run("status buckets select on status", func(t *testing.T) {
		assert.True(t, StateWaiting.Matches(future, now))
		assert.False(t, StateWaiting.Matches(current, now))
		assert.True(t, StateRejected.Matches(rejected, now))
		assert.False(t, StateRejected.Matches(past, now))
	})

	t.Run("CURRENT is strict on both ends", func(t *testing.T) {
		startsNow := mk(0, time.Hour, StatusApproved)
		endsNow := mk(-time.Hour, 0, StatusApproved)
		assert.False(t, StateCurrent.Matches(startsNow, now))
		assert.False(t, StateCurrent.Matches(endsNow, now))
		// A booking starting exactly now is FUTURE by neither predicate;
		// strict bounds leave the boundary instant unclassified on purpose.
		assert.False(t, StateFuture.Matches(startsNow, now))
		assert.False(t, StatePast.Matches(endsNow, now))
	})
}
