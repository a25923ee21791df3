package convenio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

func TestNewMonthlyAction(t *testing.T) {
	month := testMonth(t)

	t.Run("creates unread action with valid inputs", func(t *testing.T) {
		a, err := NewMonthlyAction(4, month, ActionTypeChatMessage, "Nuevo mensaje de Club Norte", "sistema")
		require.NoError(t, err)

		assert.Equal(t, int64(4), a.ConvenioID)
		assert.Equal(t, month, a.MonthStart)
		assert.Equal(t, ActionTypeChatMessage, a.Type)
		assert.Equal(t, "Nuevo mensaje de Club Norte", a.Description)
		assert.Equal(t, "sistema", a.CreatedBy)
		assert.False(t, a.Leido)
		assert.Empty(t, a.LeidoBy)
		assert.Nil(t, a.LeidoAt)
		assert.Equal(t, "{}", a.Metadata)
	})

	t.Run("truncates long descriptions to 140 runes", func(t *testing.T) {
		long := strings.Repeat("ñ", 300)
		a, err := NewMonthlyAction(4, month, ActionTypeFinishLoading, long, "recepcion")
		require.NoError(t, err)

		runes := []rune(a.Description)
		assert.Len(t, runes, 141)
		assert.Equal(t, '…', runes[140])
	})

	t.Run("fails with unknown type", func(t *testing.T) {
		_, err := NewMonthlyAction(4, month, ActionType("OTRO"), "desc", "sistema")
		require.Error(t, err)
	})

	t.Run("fails with zero month", func(t *testing.T) {
		_, err := NewMonthlyAction(4, valueobject.MonthStart{}, ActionTypeChatMessage, "desc", "sistema")
		require.Error(t, err)
	})

	t.Run("fails with invalid convenio id", func(t *testing.T) {
		_, err := NewMonthlyAction(0, month, ActionTypeChatMessage, "desc", "sistema")
		require.Error(t, err)
	})
}

func TestMonthlyActionReadState(t *testing.T) {
	month := testMonth(t)

	t.Run("mark read stamps reader and timestamp", func(t *testing.T) {
		a, err := NewMonthlyAction(4, month, ActionTypeChatMessage, "desc", "sistema")
		require.NoError(t, err)

		a.MarkRead("recepcion")
		assert.True(t, a.Leido)
		assert.Equal(t, "recepcion", a.LeidoBy)
		require.NotNil(t, a.LeidoAt)
		assert.WithinDuration(t, time.Now(), *a.LeidoAt, time.Second)
	})

	t.Run("reset unread clears reader and timestamp", func(t *testing.T) {
		a, err := NewMonthlyAction(4, month, ActionTypeChatMessage, "desc", "sistema")
		require.NoError(t, err)
		a.MarkRead("recepcion")

		a.ResetUnread()
		assert.False(t, a.Leido)
		assert.Empty(t, a.LeidoBy)
		assert.Nil(t, a.LeidoAt)
	})
}

func TestMonthlyActionRefresh(t *testing.T) {
	month := testMonth(t)

	t.Run("replaces description and creator keeping read state", func(t *testing.T) {
		a, err := NewMonthlyAction(4, month, ActionTypeFinishLoading, "primera carga", "recepcion")
		require.NoError(t, err)
		a.MarkRead("admin")

		a.Refresh("carga corregida", "recepcion2", `{"items":12}`)
		assert.Equal(t, "carga corregida", a.Description)
		assert.Equal(t, "recepcion2", a.CreatedBy)
		assert.Equal(t, `{"items":12}`, a.Metadata)
		assert.True(t, a.Leido)
		assert.Equal(t, "admin", a.LeidoBy)
	})

	t.Run("empty metadata keeps the previous value", func(t *testing.T) {
		a, err := NewMonthlyAction(4, month, ActionTypeSendRoster, "listado", "recepcion")
		require.NoError(t, err)

		a.Refresh(strings.Repeat("x", 500), "recepcion", "")
		assert.Len(t, []rune(a.Description), 141)
		assert.Equal(t, "{}", a.Metadata)
	})
}

func TestActionTypeHelpers(t *testing.T) {
	assert.True(t, IsOperational(ActionTypeFinishLoading))
	assert.True(t, IsOperational(ActionTypeSendRoster))
	assert.False(t, IsOperational(ActionTypeChatMessage))
	assert.ElementsMatch(t,
		[]ActionType{ActionTypeFinishLoading, ActionTypeSendRoster},
		OperationalActionTypes())
}
