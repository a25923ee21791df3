package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureStart() time.Time {
	return time.Now().Add(24 * time.Hour).Truncate(time.Minute)
}

func TestNewClassSession(t *testing.T) {
	t.Run("schedules a class", func(t *testing.T) {
		s, err := NewClassSession("funcional", 3, "Sala A", futureStart(), 60, 20)
		require.NoError(t, err)
		assert.Equal(t, SessionStatusScheduled, s.Status)
		assert.Equal(t, s.StartsAt.Add(time.Hour), s.EndsAt())
		assert.True(t, s.IsBookable(time.Now()))
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		_, err := NewClassSession("yoga", 3, "", futureStart(), 60, 0)
		require.Error(t, err)
	})

	t.Run("rejects duration out of range", func(t *testing.T) {
		_, err := NewClassSession("yoga", 3, "", futureStart(), 300, 10)
		require.Error(t, err)
	})
}

func TestClassSessionLifecycle(t *testing.T) {
	t.Run("cancel blocks further bookings", func(t *testing.T) {
		s, err := NewClassSession("spinning", 3, "", futureStart(), 45, 15)
		require.NoError(t, err)

		require.NoError(t, s.Cancel("instructor enfermo"))
		assert.Equal(t, SessionStatusCancelled, s.Status)
		assert.False(t, s.IsBookable(time.Now()))
		require.Error(t, s.Cancel("de nuevo"))
	})

	t.Run("session that already started is not bookable", func(t *testing.T) {
		s, err := NewClassSession("spinning", 3, "", futureStart(), 45, 15)
		require.NoError(t, err)
		assert.False(t, s.IsBookable(s.StartsAt.Add(time.Minute)))
	})

	t.Run("mark done only from scheduled", func(t *testing.T) {
		s, err := NewClassSession("yoga", 3, "", futureStart(), 60, 10)
		require.NoError(t, err)
		require.NoError(t, s.MarkDone())
		require.Error(t, s.MarkDone())
	})
}

func TestBooking(t *testing.T) {
	t.Run("confirms and cancels", func(t *testing.T) {
		b, err := NewBooking(5, 9)
		require.NoError(t, err)
		assert.True(t, b.IsActive())

		require.NoError(t, b.Cancel())
		assert.False(t, b.IsActive())
		require.Error(t, b.Cancel())
	})

	t.Run("records attendance", func(t *testing.T) {
		b, err := NewBooking(5, 9)
		require.NoError(t, err)
		require.NoError(t, b.MarkAttendance(true))
		assert.Equal(t, BookingStatusAttended, b.Status)
		assert.True(t, b.IsActive())
	})

	t.Run("records no-show", func(t *testing.T) {
		b, err := NewBooking(5, 9)
		require.NoError(t, err)
		require.NoError(t, b.MarkAttendance(false))
		assert.Equal(t, BookingStatusNoShow, b.Status)
		assert.False(t, b.IsActive())
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		_, err := NewBooking(0, 9)
		require.Error(t, err)
		_, err = NewBooking(5, 0)
		require.Error(t, err)
	})
}
