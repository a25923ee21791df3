package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/infrastructure/auth"
)

// AuthServiceConfig tunes the login lockout policy
type AuthServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultAuthServiceConfig returns the default lockout policy
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwtService *auth.JWTService, config AuthServiceConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a user and issues a token. Invalid credentials and
// unknown usernames return the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Usuario o contraseña inválidos")
		}
		return nil, err
	}

	if !user.CanLogin() {
		s.logger.Warn("Login rejected for inactive account",
			zap.String("username", user.Username),
			zap.String("status", string(user.Status)),
		)
		return nil, shared.NewDomainError("UNAUTHORIZED", "La cuenta no admite ingresos en este momento")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if saveErr := s.users.Save(ctx, user); saveErr != nil {
			s.logger.Error("Failed to record login failure", zap.Error(saveErr))
		}
		if locked {
			s.logger.Warn("Account locked after repeated failures", zap.String("username", user.Username))
		}
		return nil, shared.NewDomainError("UNAUTHORIZED", "Usuario o contraseña inválidos")
	}

	user.RecordLoginSuccess()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword replaces the caller's password after verifying the
// current one
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("UNAUTHORIZED", "La contraseña actual es incorrecta")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}
