package identity

import (
	"context"
	"errors"

	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/domain/shared"
)

// UserService handles gym user administration
type UserService struct {
	users identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create registers a gym user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, shared.NewDomainError("CONFLICT", "El nombre de usuario ya está en uso")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Password, req.DisplayName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	user.Email = req.Email
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns users matching the filter, with the total count
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserResponse, int64, error) {
	users, total, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, total, nil
}

// Deactivate disables an account
func (s *UserService) Deactivate(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate re-enables an account, clearing any lock
func (s *UserService) Activate(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Unlock()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
