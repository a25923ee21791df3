package convenio

import (
	"context"
	"strings"

	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/domain/shared"
)

// Identity is a resolved gym-user identity
type Identity struct {
	ID   int64
	Name string
}

// AuthContext carries the authenticated session identity extracted from the
// JWT, when one is present.
type AuthContext struct {
	UserID      int64
	DisplayName string
}

// IdentityResolver resolves the acting gym user for chat operations with one
// uniform priority: authenticated session identity, then explicit body
// fields, then a user lookup by id.
type IdentityResolver struct {
	users identity.UserRepository
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(users identity.UserRepository) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve returns the acting user's id and display name, or a validation
// error when no source yields a usable identity.
func (r *IdentityResolver) Resolve(ctx context.Context, auth *AuthContext, bodyUserID int64, bodyName string) (Identity, error) {
	bodyName = strings.TrimSpace(bodyName)

	if auth != nil && auth.UserID > 0 {
		name := strings.TrimSpace(auth.DisplayName)
		if name == "" {
			name = bodyName
		}
		if name == "" {
			name = r.lookupName(ctx, auth.UserID)
		}
		if name == "" {
			return Identity{}, shared.NewDomainError("VALIDATION", "No se pudo resolver el nombre del usuario")
		}
		return Identity{ID: auth.UserID, Name: name}, nil
	}

	if bodyUserID > 0 {
		if bodyName != "" {
			return Identity{ID: bodyUserID, Name: bodyName}, nil
		}
		if name := r.lookupName(ctx, bodyUserID); name != "" {
			return Identity{ID: bodyUserID, Name: name}, nil
		}
		return Identity{}, shared.NewDomainError("VALIDATION", "No se pudo resolver el usuario")
	}

	return Identity{}, shared.NewDomainError("VALIDATION", "No se pudo resolver el usuario")
}

func (r *IdentityResolver) lookupName(ctx context.Context, userID int64) string {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.GetDisplayNameOrUsername()
}
