package scheduling

import (
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// SessionStatus is the lifecycle status of a scheduled class
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "PROGRAMADA"
	SessionStatusCancelled SessionStatus = "CANCELADA"
	SessionStatusDone      SessionStatus = "REALIZADA"
)

// ClassSession is one scheduled occurrence of a class with a fixed
// capacity. Bookings are counted against Capacity inside the booking
// transaction.
type ClassSession struct {
	shared.BaseAggregateRoot
	Discipline   string        `gorm:"type:varchar(80);not null"` // funcional, spinning, yoga
	InstructorID int64         `gorm:"not null;index"`
	Room         string        `gorm:"type:varchar(60)"`
	StartsAt     time.Time     `gorm:"not null;index"`
	DurationMin  int           `gorm:"not null"`
	Capacity     int           `gorm:"not null"`
	Status       SessionStatus `gorm:"type:varchar(20);not null;default:'PROGRAMADA'"`
	CancelReason string        `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ClassSession) TableName() string {
	return "class_sessions"
}

// NewClassSession schedules a class
func NewClassSession(discipline string, instructorID int64, room string, startsAt time.Time, durationMin, capacity int) (*ClassSession, error) {
	discipline = strings.TrimSpace(discipline)
	if discipline == "" {
		return nil, shared.NewDomainError("VALIDATION", "La disciplina no puede estar vacía")
	}
	if instructorID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "instructor_id inválido")
	}
	if startsAt.IsZero() {
		return nil, shared.NewDomainError("VALIDATION", "La fecha de inicio es obligatoria")
	}
	if durationMin <= 0 || durationMin > 240 {
		return nil, shared.NewDomainError("VALIDATION", "Duración fuera de rango (1 a 240 minutos)")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "La capacidad debe ser mayor a cero")
	}
	return &ClassSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Discipline:        discipline,
		InstructorID:      instructorID,
		Room:              strings.TrimSpace(room),
		StartsAt:          startsAt,
		DurationMin:       durationMin,
		Capacity:          capacity,
		Status:            SessionStatusScheduled,
	}, nil
}

// EndsAt returns the scheduled end time
func (s *ClassSession) EndsAt() time.Time {
	return s.StartsAt.Add(time.Duration(s.DurationMin) * time.Minute)
}

// IsBookable reports whether new bookings are accepted
func (s *ClassSession) IsBookable(now time.Time) bool {
	return s.Status == SessionStatusScheduled && now.Before(s.StartsAt)
}

// Cancel cancels the session before it starts
func (s *ClassSession) Cancel(reason string) error {
	if s.Status != SessionStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Solo se puede cancelar una clase programada")
	}
	s.Status = SessionStatusCancelled
	s.CancelReason = strings.TrimSpace(reason)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// MarkDone closes a session after it ran
func (s *ClassSession) MarkDone() error {
	if s.Status != SessionStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Solo se puede cerrar una clase programada")
	}
	s.Status = SessionStatusDone
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Resize changes capacity; shrinking below confirmed bookings is rejected
// at the service layer where the booking count is known.
func (s *ClassSession) Resize(capacity int) error {
	if capacity <= 0 {
		return shared.NewDomainError("VALIDATION", "La capacidad debe ser mayor a cero")
	}
	s.Capacity = capacity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
