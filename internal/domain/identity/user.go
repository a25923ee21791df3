package identity

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gymhub/backend/internal/domain/shared"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Role is a coarse staff role; authorization checks compare against these
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleReception  Role = "RECEPCION"
	RoleInstructor Role = "PROFESOR"
)

// Password cost for bcrypt
const bcryptCost = 12

var usernameRegex = regexp.MustCompile(`^[a-z0-9._-]{3,50}$`)

// User is a staff account. It is the aggregate root for authentication
// and authorization.
type User struct {
	shared.BaseAggregateRoot
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string     `gorm:"type:varchar(150)"`
	PasswordHash   string     `gorm:"type:varchar(100);not null"`
	DisplayName    string     `gorm:"type:varchar(100)"`
	Role           Role       `gorm:"type:varchar(20);not null;default:'RECEPCION'"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(username, password, displayName string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernameRegex.MatchString(username) {
		return nil, shared.NewDomainError("VALIDATION", "Nombre de usuario inválido")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		DisplayName:       strings.TrimSpace(displayName),
		Role:              role,
		Status:            UserStatusActive,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("VALIDATION", "La contraseña debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL", "No se pudo procesar la contraseña")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLoginSuccess clears the failure counter and stamps the login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordLoginFailure increments the failure counter, locking the account
// once maxAttempts is reached. It reports whether the account got locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	if u.FailedAttempts >= maxAttempts {
		until := time.Now().Add(lockDuration)
		u.LockedUntil = &until
		u.Status = UserStatusLocked
		return true
	}
	return false
}

// Unlock clears a lock, manually or after expiry
func (u *User) Unlock() {
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE", "El usuario ya está desactivado")
	}
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// CanLogin reports whether the account accepts logins right now
func (u *User) CanLogin() bool {
	if u.Status == UserStatusDeactivated {
		return false
	}
	if u.Status == UserStatusLocked {
		return u.LockedUntil != nil && time.Now().After(*u.LockedUntil)
	}
	return true
}

// GetDisplayNameOrUsername falls back to the username
func (u *User) GetDisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// IsAdmin reports whether the user holds the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func validateRole(r Role) error {
	switch r {
	case RoleAdmin, RoleReception, RoleInstructor:
		return nil
	default:
		return shared.NewDomainError("VALIDATION", "Rol desconocido: "+string(r))
	}
}

// UserRepository provides access to users
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	Save(ctx context.Context, u *User) error
}
