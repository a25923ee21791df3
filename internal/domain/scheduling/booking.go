package scheduling

import (
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// BookingStatus is the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMADA"
	BookingStatusCancelled BookingStatus = "CANCELADA"
	BookingStatusAttended  BookingStatus = "ASISTIO"
	BookingStatusNoShow    BookingStatus = "AUSENTE"
)

// Booking reserves one spot in a class session for a member. A member
// holds at most one non-cancelled booking per session.
type Booking struct {
	shared.BaseAggregateRoot
	SessionID int64         `gorm:"not null;uniqueIndex:idx_booking_session_member,priority:1"`
	MemberID  int64         `gorm:"not null;uniqueIndex:idx_booking_session_member,priority:2"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'CONFIRMADA'"`
	BookedAt  time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Booking) TableName() string {
	return "class_bookings"
}

// NewBooking confirms a spot for a member
func NewBooking(sessionID, memberID int64) (*Booking, error) {
	if sessionID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "session_id inválido")
	}
	if memberID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "member_id inválido")
	}
	return &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionID:         sessionID,
		MemberID:          memberID,
		Status:            BookingStatusConfirmed,
		BookedAt:          time.Now(),
	}, nil
}

// Cancel releases the spot
func (b *Booking) Cancel() error {
	if b.Status != BookingStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Solo se puede cancelar una reserva confirmada")
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// MarkAttendance records whether the member showed up
func (b *Booking) MarkAttendance(attended bool) error {
	if b.Status != BookingStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "La reserva no está confirmada")
	}
	if attended {
		b.Status = BookingStatusAttended
	} else {
		b.Status = BookingStatusNoShow
	}
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// IsActive reports whether the booking still occupies a spot
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusAttended
}
