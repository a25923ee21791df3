package scheduling

import (
	"context"

	"github.com/gymhub/backend/internal/domain/scheduling"
)

// BookingRepositories provides access to scheduling repositories within a
// transaction. Capacity is enforced by recounting active bookings inside the
// same transaction that inserts the new one.
type BookingRepositories interface {
	Sessions() scheduling.SessionRepository
	Bookings() scheduling.BookingRepository
}

// BookingScope runs a function with transactional repository access
type BookingScope interface {
	Execute(ctx context.Context, fn func(repos BookingRepositories) error) error
}

// NoOpBookingScope runs the function against plain repositories without a
// real transaction. Used in tests.
type NoOpBookingScope struct {
	sessions scheduling.SessionRepository
	bookings scheduling.BookingRepository
}

// NewNoOpBookingScope creates a NoOpBookingScope over the given repositories
func NewNoOpBookingScope(sessions scheduling.SessionRepository, bookings scheduling.BookingRepository) *NoOpBookingScope {
	return &NoOpBookingScope{sessions: sessions, bookings: bookings}
}

// Execute runs the function without a real transaction
func (s *NoOpBookingScope) Execute(_ context.Context, fn func(repos BookingRepositories) error) error {
	return fn(s)
}

// Sessions returns the session repository
func (s *NoOpBookingScope) Sessions() scheduling.SessionRepository { return s.sessions }

// Bookings returns the booking repository
func (s *NoOpBookingScope) Bookings() scheduling.BookingRepository { return s.bookings }

var _ BookingScope = (*NoOpBookingScope)(nil)
var _ BookingRepositories = (*NoOpBookingScope)(nil)
