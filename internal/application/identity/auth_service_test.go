package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/infrastructure/auth"
	"github.com/gymhub/backend/internal/infrastructure/config"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newAuthService(users *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-auth-service-tests",
		AccessTokenExpiration: time.Hour,
		Issuer:                "gymhub-test",
	})
	return NewAuthService(users, jwtService, DefaultAuthServiceConfig(), zap.NewNop())
}

func testUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("recepcion.centro", password, "Recepción Centro", identity.RoleReception)
	require.NoError(t, err)
	user.ID = 3
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown username and bad password look the same", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", ctx, "nadie").Return(nil, shared.ErrNotFound)
		svc := newAuthService(users)

		_, errUnknown := svc.Login(ctx, LoginRequest{Username: "nadie", Password: "contraseña1"})

		user := testUser(t, "contraseña1")
		users.On("FindByUsername", ctx, "recepcion.centro").Return(user, nil)
		users.On("Save", ctx, user).Return(nil)

		_, errBadPass := svc.Login(ctx, LoginRequest{Username: "recepcion.centro", Password: "incorrecta1"})

		require.Error(t, errUnknown)
		require.Error(t, errBadPass)
		assert.Equal(t, errUnknown.Error(), errBadPass.Error())
	})

	t.Run("successful login issues a bearer token", func(t *testing.T) {
		users := new(MockUserRepository)
		user := testUser(t, "contraseña1")
		users.On("FindByUsername", ctx, "recepcion.centro").Return(user, nil)
		users.On("Save", ctx, user).Return(nil)
		svc := newAuthService(users)

		resp, err := svc.Login(ctx, LoginRequest{Username: "recepcion.centro", Password: "contraseña1"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, int64(3), resp.User.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("repeated failures lock the account", func(t *testing.T) {
		users := new(MockUserRepository)
		user := testUser(t, "contraseña1")
		users.On("FindByUsername", ctx, "recepcion.centro").Return(user, nil)
		users.On("Save", ctx, user).Return(nil)
		svc := newAuthService(users)

		for i := 0; i < DefaultAuthServiceConfig().MaxLoginAttempts; i++ {
			_, err := svc.Login(ctx, LoginRequest{Username: "recepcion.centro", Password: "incorrecta1"})
			require.Error(t, err)
		}
		assert.Equal(t, identity.UserStatusLocked, user.Status)

		// even the right password is rejected while locked
		_, err := svc.Login(ctx, LoginRequest{Username: "recepcion.centro", Password: "contraseña1"})
		require.Error(t, err)
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password", func(t *testing.T) {
		users := new(MockUserRepository)
		user := testUser(t, "contraseña1")
		users.On("FindByID", ctx, int64(3)).Return(user, nil)
		svc := newAuthService(users)

		err := svc.ChangePassword(ctx, 3, ChangePasswordRequest{CurrentPassword: "equivocada", NewPassword: "nuevaclave1"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("replaces the password", func(t *testing.T) {
		users := new(MockUserRepository)
		user := testUser(t, "contraseña1")
		users.On("FindByID", ctx, int64(3)).Return(user, nil)
		users.On("Save", ctx, user).Return(nil)
		svc := newAuthService(users)

		err := svc.ChangePassword(ctx, 3, ChangePasswordRequest{CurrentPassword: "contraseña1", NewPassword: "nuevaclave1"})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("nuevaclave1"))
	})
}
