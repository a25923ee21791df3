package convenio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// fakeUnreadCache is an in-memory UnreadCache for service tests
type fakeUnreadCache struct {
	counts      map[int64]int64
	invalidated []int64
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{counts: make(map[int64]int64)}
}

func (c *fakeUnreadCache) Get(_ context.Context, convenioID int64) (int64, bool, error) {
	count, ok := c.counts[convenioID]
	return count, ok, nil
}

func (c *fakeUnreadCache) Set(_ context.Context, convenioID, count int64) error {
	c.counts[convenioID] = count
	return nil
}

func (c *fakeUnreadCache) Invalidate(_ context.Context, convenioID int64) error {
	delete(c.counts, convenioID)
	c.invalidated = append(c.invalidated, convenioID)
	return nil
}

type actionFixture struct {
	actions   *MockActionRepository
	convenios *MockConvenioRepository
	users     *MockUserRepository
	cache     *fakeUnreadCache
	service   *ActionService
}

func newActionFixture() *actionFixture {
	f := &actionFixture{
		actions:   new(MockActionRepository),
		convenios: new(MockConvenioRepository),
		users:     new(MockUserRepository),
		cache:     newFakeUnreadCache(),
	}
	f.service = NewActionService(f.actions, f.convenios, NewIdentityResolver(f.users), f.cache)
	return f
}

func TestActionServiceUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects chat type", func(t *testing.T) {
		f := newActionFixture()
		_, err := f.service.Upsert(ctx, UpsertActionRequest{
			ConvenioID: 58,
			MonthStart: "2025-06-01 00:00:00",
			Tipo:       "CHAT_MENSAJE",
		}, nil)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION", domainErr.Code)
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		f := newActionFixture()
		_, err := f.service.Upsert(ctx, UpsertActionRequest{
			ConvenioID: 58,
			MonthStart: "2025-06-15 00:00:00",
			Tipo:       "FINALIZAR_CARGA",
		}, nil)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Message, "Mes inválido")
	})

	t.Run("upserts and invalidates the cached count", func(t *testing.T) {
		f := newActionFixture()
		month, err := valueobject.ParseMonthStart("2025-06-01 00:00:00")
		require.NoError(t, err)
		f.cache.counts[58] = 4

		stored, err := convenio.NewMonthlyAction(58, month, convenio.ActionTypeFinishLoading, "Carga completa", "Ana")
		require.NoError(t, err)
		stored.ID = 21

		f.convenios.On("Exists", ctx, int64(58)).Return(true, nil)
		f.actions.On("UpsertOperational", ctx, mock.MatchedBy(func(a *convenio.MonthlyAction) bool {
			return a.ConvenioID == 58 && a.Type == convenio.ActionTypeFinishLoading
		})).Return(nil)
		f.actions.On("Find", ctx, int64(58), month, convenio.ActionTypeFinishLoading).Return(stored, nil)

		resp, err := f.service.Upsert(ctx, UpsertActionRequest{
			ConvenioID:  58,
			MonthStart:  "2025-06-01 00:00:00",
			Tipo:        "FINALIZAR_CARGA",
			Descripcion: "Carga completa",
			Nombre:      "Ana",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(21), resp.ID)
		assert.Contains(t, f.cache.invalidated, int64(58))
	})
}

func TestActionServiceMarkRead(t *testing.T) {
	ctx := context.Background()
	month, err := valueobject.ParseMonthStart("2025-06-01 00:00:00")
	require.NoError(t, err)

	t.Run("defaults to the chat action type", func(t *testing.T) {
		f := newActionFixture()
		f.actions.On("MarkRead", ctx, int64(58), month, convenio.ActionTypeChatMessage, "Ana").Return(nil)

		err := f.service.MarkRead(ctx, MarkActionReadRequest{
			ConvenioID: 58,
			MonthStart: "2025-06-01 00:00:00",
			Nombre:     "Ana",
		}, nil)
		require.NoError(t, err)
		f.actions.AssertExpectations(t)
	})

	t.Run("marks an operational type", func(t *testing.T) {
		f := newActionFixture()
		f.actions.On("MarkRead", ctx, int64(58), month, convenio.ActionTypeSendRoster, "Ana").Return(nil)

		err := f.service.MarkRead(ctx, MarkActionReadRequest{
			ConvenioID: 58,
			MonthStart: "2025-06-01 00:00:00",
			Tipo:       "ENVIAR_LISTADO",
			Nombre:     "Ana",
		}, nil)
		require.NoError(t, err)
	})
}

func TestActionServiceCountPending(t *testing.T) {
	ctx := context.Background()

	t.Run("serves the all-months count from cache", func(t *testing.T) {
		f := newActionFixture()
		f.cache.counts[58] = 3

		resp, err := f.service.CountPending(ctx, 58, "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Count)
		f.actions.AssertNotCalled(t, "CountUnread", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to the database and fills the cache", func(t *testing.T) {
		f := newActionFixture()
		f.actions.On("CountUnread", ctx, int64(58), (*valueobject.MonthStart)(nil)).Return(int64(2), nil)

		resp, err := f.service.CountPending(ctx, 58, "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Count)
		assert.Equal(t, int64(2), f.cache.counts[58])
	})

	t.Run("month-scoped count bypasses the cache", func(t *testing.T) {
		f := newActionFixture()
		month, err := valueobject.ParseMonthStart("2025-06-01 00:00:00")
		require.NoError(t, err)
		f.cache.counts[58] = 99
		f.actions.On("CountUnread", ctx, int64(58), &month).Return(int64(1), nil)

		resp, err := f.service.CountPending(ctx, 58, "2025-06-01 00:00:00")
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Count)
		assert.Equal(t, "2025-06-01 00:00:00", resp.MonthStart)
	})
}
