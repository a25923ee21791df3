package convenio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

func testMonth(t *testing.T) valueobject.MonthStart {
	t.Helper()
	m, err := valueobject.NewMonthStart(2025, time.March)
	require.NoError(t, err)
	return m
}

func TestNewMessage(t *testing.T) {
	month := testMonth(t)

	t.Run("creates message with valid inputs", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", "Hola, consulta sobre la carga")
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, int64(7), msg.ThreadID)
		assert.Equal(t, month, msg.MonthStart)
		assert.Equal(t, SenderRoleConvenio, msg.SenderRole)
		assert.Equal(t, "Club Norte", msg.SenderName)
		assert.Equal(t, "Hola, consulta sobre la carga", msg.Body)
		assert.False(t, msg.IsDeleted())
		assert.Nil(t, msg.EditedAt)
		assert.Equal(t, 1, msg.Version)
	})

	t.Run("trims sender name and body", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleGimnasio, "  Recepción  ", "  hola  ")
		require.NoError(t, err)
		assert.Equal(t, "Recepción", msg.SenderName)
		assert.Equal(t, "hola", msg.Body)
	})

	t.Run("fails with invalid thread id", func(t *testing.T) {
		_, err := NewMessage(0, month, SenderRoleConvenio, "Club Norte", "hola")
		require.Error(t, err)
	})

	t.Run("fails with zero month", func(t *testing.T) {
		_, err := NewMessage(7, valueobject.MonthStart{}, SenderRoleConvenio, "Club Norte", "hola")
		require.Error(t, err)
	})

	t.Run("fails with unknown sender role", func(t *testing.T) {
		_, err := NewMessage(7, month, SenderRole("ADMIN"), "Club Norte", "hola")
		require.Error(t, err)
	})

	t.Run("fails with blank body", func(t *testing.T) {
		_, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", "   ")
		require.Error(t, err)
	})

	t.Run("fails with blank sender name", func(t *testing.T) {
		_, err := NewMessage(7, month, SenderRoleConvenio, "", "hola")
		require.Error(t, err)
	})
}

func TestMessageEdit(t *testing.T) {
	month := testMonth(t)

	t.Run("updates body and stamps edited_at", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", "hola")
		require.NoError(t, err)
		require.Nil(t, msg.EditedAt)

		err = msg.Edit("hola, corregido")
		require.NoError(t, err)
		assert.Equal(t, "hola, corregido", msg.Body)
		require.NotNil(t, msg.EditedAt)
		assert.Equal(t, 2, msg.Version)
	})

	t.Run("rejects blank replacement body", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", "hola")
		require.NoError(t, err)

		err = msg.Edit("  ")
		require.Error(t, err)
		assert.Equal(t, "hola", msg.Body)
	})

	t.Run("rejects editing a deleted message", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", "hola")
		require.NoError(t, err)
		msg.SoftDelete("admin", "")

		err = msg.Edit("nuevo cuerpo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "eliminado")
		assert.Equal(t, "hola", msg.Body)
	})
}

func TestMessageSoftDelete(t *testing.T) {
	month := testMonth(t)

	t.Run("marks message deleted keeping the body", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleGimnasio, "Recepción", "mensaje a borrar")
		require.NoError(t, err)

		msg.SoftDelete("admin", "duplicado")
		assert.True(t, msg.IsDeleted())
		require.NotNil(t, msg.DeletedAt)
		assert.Equal(t, "admin", msg.DeletedBy)
		assert.Equal(t, "duplicado", msg.DeleteReason)
		assert.Equal(t, "mensaje a borrar", msg.Body)
	})

	t.Run("second delete keeps the first deletion stamp", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleGimnasio, "Recepción", "mensaje")
		require.NoError(t, err)

		msg.SoftDelete("admin", "")
		first := *msg.DeletedAt

		msg.SoftDelete("otro", "tarde")
		assert.Equal(t, first, *msg.DeletedAt)
		assert.Equal(t, "admin", msg.DeletedBy)
	})
}

func TestMessagePreview(t *testing.T) {
	month := testMonth(t)

	t.Run("returns short bodies untouched", func(t *testing.T) {
		msg, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", "hola")
		require.NoError(t, err)
		assert.Equal(t, "hola", msg.Preview(140))
	})

	t.Run("truncates long bodies at the rune boundary", func(t *testing.T) {
		body := strings.Repeat("á", 200)
		msg, err := NewMessage(7, month, SenderRoleConvenio, "Club Norte", body)
		require.NoError(t, err)

		preview := msg.Preview(140)
		runes := []rune(preview)
		assert.Len(t, runes, 141)
		assert.Equal(t, '…', runes[140])
		assert.Equal(t, strings.Repeat("á", 140), string(runes[:140]))
	})
}

func TestNewMessageRead(t *testing.T) {
	t.Run("creates receipt with valid ids", func(t *testing.T) {
		r, err := NewMessageRead(3, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(3), r.MessageID)
		assert.Equal(t, int64(9), r.ReaderUserID)
		assert.False(t, r.ReadAt.IsZero())
	})

	t.Run("fails with invalid message id", func(t *testing.T) {
		_, err := NewMessageRead(0, 9)
		require.Error(t, err)
	})

	t.Run("fails when the reader cannot be resolved", func(t *testing.T) {
		_, err := NewMessageRead(3, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lector")
	})
}
