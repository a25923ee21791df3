package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

func setupActionTestDB(t *testing.T) *GormMonthlyActionRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&convenio.MonthlyAction{}))
	return NewGormMonthlyActionRepository(db)
}

func actionMonth(t *testing.T) valueobject.MonthStart {
	t.Helper()
	m, err := valueobject.ParseMonthStart("2025-03-01 00:00:00")
	require.NoError(t, err)
	return m
}

func TestGormMonthlyActionRepository_UpsertChatNotification(t *testing.T) {
	repo := setupActionTestDB(t)
	ctx := context.Background()
	month := actionMonth(t)

	t.Run("creates a single unread row per convenio and month", func(t *testing.T) {
		require.NoError(t, repo.UpsertChatNotification(ctx, 1, month, "Nuevo mensaje: hola", "Club Norte"))
		require.NoError(t, repo.UpsertChatNotification(ctx, 1, month, "Nuevo mensaje: otro", "Club Norte"))

		actions, err := repo.List(ctx, 1, &month)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, convenio.ActionTypeChatMessage, actions[0].Type)
		assert.Equal(t, "Nuevo mensaje: otro", actions[0].Description)
		assert.False(t, actions[0].Leido)
	})

	t.Run("resets the read state on new activity", func(t *testing.T) {
		require.NoError(t, repo.UpsertChatNotification(ctx, 2, month, "Nuevo mensaje", "Club Sur"))
		require.NoError(t, repo.MarkRead(ctx, 2, month, convenio.ActionTypeChatMessage, "recepcion"))

		a, err := repo.Find(ctx, 2, month, convenio.ActionTypeChatMessage)
		require.NoError(t, err)
		require.True(t, a.Leido)

		require.NoError(t, repo.UpsertChatNotification(ctx, 2, month, "Nuevo mensaje: más", "Club Sur"))

		a, err = repo.Find(ctx, 2, month, convenio.ActionTypeChatMessage)
		require.NoError(t, err)
		assert.False(t, a.Leido)
		assert.Empty(t, a.LeidoBy)
		assert.Nil(t, a.LeidoAt)
	})

	t.Run("different months get separate rows", func(t *testing.T) {
		next := month.Next()
		require.NoError(t, repo.UpsertChatNotification(ctx, 3, month, "marzo", "Club"))
		require.NoError(t, repo.UpsertChatNotification(ctx, 3, next, "abril", "Club"))

		actions, err := repo.List(ctx, 3, nil)
		require.NoError(t, err)
		assert.Len(t, actions, 2)
	})
}

func TestGormMonthlyActionRepository_UpsertOperational(t *testing.T) {
	repo := setupActionTestDB(t)
	ctx := context.Background()
	month := actionMonth(t)

	t.Run("preserves read state on refresh", func(t *testing.T) {
		a, err := convenio.NewMonthlyAction(5, month, convenio.ActionTypeFinishLoading, "carga inicial", "recepcion")
		require.NoError(t, err)
		require.NoError(t, repo.UpsertOperational(ctx, a))
		require.NoError(t, repo.MarkRead(ctx, 5, month, convenio.ActionTypeFinishLoading, "admin"))

		refreshed, err := convenio.NewMonthlyAction(5, month, convenio.ActionTypeFinishLoading, "carga corregida", "recepcion2")
		require.NoError(t, err)
		require.NoError(t, repo.UpsertOperational(ctx, refreshed))

		found, err := repo.Find(ctx, 5, month, convenio.ActionTypeFinishLoading)
		require.NoError(t, err)
		assert.Equal(t, "carga corregida", found.Description)
		assert.Equal(t, "recepcion2", found.CreatedBy)
		assert.True(t, found.Leido)
		assert.Equal(t, "admin", found.LeidoBy)
	})

	t.Run("rejects the chat action type", func(t *testing.T) {
		a, err := convenio.NewMonthlyAction(5, month, convenio.ActionTypeChatMessage, "desc", "x")
		require.NoError(t, err)
		require.Error(t, repo.UpsertOperational(ctx, a))
	})

	t.Run("types coexist under the same month", func(t *testing.T) {
		a, err := convenio.NewMonthlyAction(6, month, convenio.ActionTypeFinishLoading, "carga", "r")
		require.NoError(t, err)
		require.NoError(t, repo.UpsertOperational(ctx, a))

		b, err := convenio.NewMonthlyAction(6, month, convenio.ActionTypeSendRoster, "listado", "r")
		require.NoError(t, err)
		require.NoError(t, repo.UpsertOperational(ctx, b))

		actions, err := repo.List(ctx, 6, &month)
		require.NoError(t, err)
		assert.Len(t, actions, 2)
	})
}

func TestGormMonthlyActionRepository_CountUnread(t *testing.T) {
	repo := setupActionTestDB(t)
	ctx := context.Background()
	month := actionMonth(t)

	require.NoError(t, repo.UpsertChatNotification(ctx, 9, month, "mensaje", "Club"))
	a, err := convenio.NewMonthlyAction(9, month, convenio.ActionTypeSendRoster, "listado", "r")
	require.NoError(t, err)
	require.NoError(t, repo.UpsertOperational(ctx, a))

	count, err := repo.CountUnread(ctx, 9, &month)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.MarkRead(ctx, 9, month, convenio.ActionTypeSendRoster, "admin"))
	count, err = repo.CountUnread(ctx, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormMonthlyActionRepository_FindMissing(t *testing.T) {
	repo := setupActionTestDB(t)
	_, err := repo.Find(context.Background(), 99, actionMonth(t), convenio.ActionTypeChatMessage)
	require.Error(t, err)
}
