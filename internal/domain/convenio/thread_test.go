package convenio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThread(t *testing.T) {
	t.Run("creates open thread without contact name", func(t *testing.T) {
		th, err := NewThread(12)
		require.NoError(t, err)

		assert.Equal(t, int64(12), th.ConvenioID)
		assert.Equal(t, ThreadStatusOpen, th.Status)
		assert.True(t, th.NeedsContactName())
		assert.Nil(t, th.LastMessageAt)
	})

	t.Run("fails with invalid convenio id", func(t *testing.T) {
		_, err := NewThread(0)
		require.Error(t, err)
	})
}

func TestThreadContactName(t *testing.T) {
	t.Run("stores trimmed contact name", func(t *testing.T) {
		th, err := NewThread(12)
		require.NoError(t, err)

		require.NoError(t, th.SetContactName("  Marta Pérez  "))
		assert.Equal(t, "Marta Pérez", th.ContactName)
		assert.False(t, th.NeedsContactName())
	})

	t.Run("rejects blank contact name", func(t *testing.T) {
		th, err := NewThread(12)
		require.NoError(t, err)
		require.Error(t, th.SetContactName("   "))
	})

	t.Run("rejects contact name over 100 characters", func(t *testing.T) {
		th, err := NewThread(12)
		require.NoError(t, err)
		require.Error(t, th.SetContactName(strings.Repeat("a", 101)))
	})
}

func TestThreadLifecycle(t *testing.T) {
	t.Run("touch last message advances the marker", func(t *testing.T) {
		th, err := NewThread(12)
		require.NoError(t, err)

		ts := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
		th.TouchLastMessage(ts)
		require.NotNil(t, th.LastMessageAt)
		assert.Equal(t, ts, *th.LastMessageAt)
	})

	t.Run("close and reopen toggle status once", func(t *testing.T) {
		th, err := NewThread(12)
		require.NoError(t, err)

		require.NoError(t, th.Close())
		assert.Equal(t, ThreadStatusClosed, th.Status)
		require.Error(t, th.Close())

		require.NoError(t, th.Reopen())
		assert.Equal(t, ThreadStatusOpen, th.Status)
		require.Error(t, th.Reopen())
	})
}
