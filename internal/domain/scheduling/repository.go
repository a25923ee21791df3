package scheduling

import (
	"context"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// SessionRepository provides access to class sessions
type SessionRepository interface {
	FindByID(ctx context.Context, id int64) (*ClassSession, error)
	FindBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]ClassSession, int64, error)
	Save(ctx context.Context, s *ClassSession) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository provides access to bookings
type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (*Booking, error)
	FindBySession(ctx context.Context, sessionID int64) ([]Booking, error)
	FindActive(ctx context.Context, sessionID, memberID int64) (*Booking, error)
	// CountActive counts spots taken in the session; called inside the
	// booking transaction to enforce capacity.
	CountActive(ctx context.Context, sessionID int64) (int64, error)
	Save(ctx context.Context, b *Booking) error
}
