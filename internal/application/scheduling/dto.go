package scheduling

import (
	"time"

	"github.com/gymhub/backend/internal/domain/scheduling"
)

// CreateSessionRequest schedules a class
type CreateSessionRequest struct {
	Discipline   string    `json:"discipline" binding:"required,min=1,max=80"`
	InstructorID int64     `json:"instructor_id" binding:"required,gt=0"`
	Room         string    `json:"room" binding:"max=60"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	DurationMin  int       `json:"duration_min" binding:"required,min=1,max=240"`
	Capacity     int       `json:"capacity" binding:"required,gt=0"`
}

// CancelSessionRequest cancels a scheduled class
type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

// ResizeSessionRequest changes a session's capacity
type ResizeSessionRequest struct {
	Capacity int `json:"capacity" binding:"required,gt=0"`
}

// SessionResponse represents a class session in API responses
type SessionResponse struct {
	ID           int64     `json:"id"`
	Discipline   string    `json:"discipline"`
	InstructorID int64     `json:"instructor_id"`
	Room         string    `json:"room"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	DurationMin  int       `json:"duration_min"`
	Capacity     int       `json:"capacity"`
	Status       string    `json:"status"`
	CancelReason string    `json:"cancel_reason,omitempty"`
}

// ToSessionResponse maps a session to its response shape
func ToSessionResponse(s *scheduling.ClassSession) SessionResponse {
	return SessionResponse{
		ID:           s.ID,
		Discipline:   s.Discipline,
		InstructorID: s.InstructorID,
		Room:         s.Room,
		StartsAt:     s.StartsAt,
		EndsAt:       s.EndsAt(),
		DurationMin:  s.DurationMin,
		Capacity:     s.Capacity,
		Status:       string(s.Status),
		CancelReason: s.CancelReason,
	}
}

// BookRequest books a member into a session
type BookRequest struct {
	MemberID int64 `json:"member_id" binding:"required,gt=0"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	MemberID  int64     `json:"member_id"`
	Status    string    `json:"status"`
	BookedAt  time.Time `json:"booked_at"`
}

// ToBookingResponse maps a booking to its response shape
func ToBookingResponse(b *scheduling.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		SessionID: b.SessionID,
		MemberID:  b.MemberID,
		Status:    string(b.Status),
		BookedAt:  b.BookedAt,
	}
}
