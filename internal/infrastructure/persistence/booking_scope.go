package persistence

import (
	"context"

	"gorm.io/gorm"

	appscheduling "github.com/gymhub/backend/internal/application/scheduling"
	"github.com/gymhub/backend/internal/domain/scheduling"
)

// GormBookingScope implements BookingScope using GORM transactions so the
// capacity check and the booking insert see the same snapshot.
type GormBookingScope struct {
	db *gorm.DB
}

// NewGormBookingScope creates a new GormBookingScope
func NewGormBookingScope(db *gorm.DB) *GormBookingScope {
	return &GormBookingScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBookingScope) Execute(ctx context.Context, fn func(repos appscheduling.BookingRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookingRepositories{tx: tx})
	})
}

type gormBookingRepositories struct {
	tx *gorm.DB
}

// Sessions returns the session repository scoped to the current transaction
func (r *gormBookingRepositories) Sessions() scheduling.SessionRepository {
	return NewGormSessionRepository(r.tx)
}

// Bookings returns the booking repository scoped to the current transaction
func (r *gormBookingRepositories) Bookings() scheduling.BookingRepository {
	return NewGormBookingRepository(r.tx)
}

var _ appscheduling.BookingScope = (*GormBookingScope)(nil)
var _ appscheduling.BookingRepositories = (*gormBookingRepositories)(nil)
