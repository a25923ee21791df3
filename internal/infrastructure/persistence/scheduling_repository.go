package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/scheduling"
	"github.com/gymhub/backend/internal/domain/shared"
)

// GormSessionRepository implements scheduling.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a class session by its ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id int64) (*scheduling.ClassSession, error) {
	var s scheduling.ClassSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindBetween finds sessions starting inside the window, with the total count
func (r *GormSessionRepository) FindBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]scheduling.ClassSession, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&scheduling.ClassSession{}).
		Where("starts_at >= ? AND starts_at < ?", from, to)
	if discipline, ok := filter.Filters["discipline"].(string); ok && discipline != "" {
		query = query.Where("discipline = ?", discipline)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []scheduling.ClassSession
	if err := query.Order("starts_at asc").Limit(filter.Limit).Offset(filter.Offset).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// Save persists a class session
func (r *GormSessionRepository) Save(ctx context.Context, s *scheduling.ClassSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete removes a class session
func (r *GormSessionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&scheduling.ClassSession{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormBookingRepository implements scheduling.BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*scheduling.Booking, error) {
	var b scheduling.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindBySession lists all bookings for a session
func (r *GormBookingRepository) FindBySession(ctx context.Context, sessionID int64) ([]scheduling.Booking, error) {
	var bookings []scheduling.Booking
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("booked_at asc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindActive finds the member's live booking for the session, if any
func (r *GormBookingRepository) FindActive(ctx context.Context, sessionID, memberID int64) (*scheduling.Booking, error) {
	var b scheduling.Booking
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND member_id = ? AND status IN ?", sessionID, memberID,
			[]scheduling.BookingStatus{scheduling.BookingStatusConfirmed, scheduling.BookingStatusAttended}).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// CountActive counts spots taken in the session
func (r *GormBookingRepository) CountActive(ctx context.Context, sessionID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&scheduling.Booking{}).
		Where("session_id = ? AND status IN ?", sessionID,
			[]scheduling.BookingStatus{scheduling.BookingStatusConfirmed, scheduling.BookingStatusAttended}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a booking
func (r *GormBookingRepository) Save(ctx context.Context, b *scheduling.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}
