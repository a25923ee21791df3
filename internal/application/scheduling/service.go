package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/gymhub/backend/internal/domain/scheduling"
	"github.com/gymhub/backend/internal/domain/shared"
)

// Service handles class scheduling and bookings
type Service struct {
	sessions scheduling.SessionRepository
	bookings scheduling.BookingRepository
	scope    BookingScope
}

// NewService creates a new scheduling Service
func NewService(sessions scheduling.SessionRepository, bookings scheduling.BookingRepository, scope BookingScope) *Service {
	return &Service{sessions: sessions, bookings: bookings, scope: scope}
}

// CreateSession schedules a class
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error) {
	session, err := scheduling.NewClassSession(req.Discipline, req.InstructorID, req.Room, req.StartsAt, req.DurationMin, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id int64) (*SessionResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// ListWeek returns the sessions starting within the week containing from
func (s *Service) ListWeek(ctx context.Context, from time.Time, filter shared.Filter) ([]SessionResponse, int64, error) {
	weekStart := from.Truncate(24 * time.Hour)
	sessions, total, err := s.sessions.FindBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7), filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToSessionResponse(&sessions[i])
	}
	return responses, total, nil
}

// CancelSession cancels a scheduled class
func (s *Service) CancelSession(ctx context.Context, id int64, req CancelSessionRequest) (*SessionResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// ResizeSession changes a session's capacity. Shrinking below the number of
// active bookings is rejected.
func (s *Service) ResizeSession(ctx context.Context, id int64, req ResizeSessionRequest) (*SessionResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.bookings.CountActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if int64(req.Capacity) < taken {
		return nil, shared.NewDomainError("INVALID_STATE", "La capacidad no puede ser menor a las reservas activas")
	}
	if err := session.Resize(req.Capacity); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// Book reserves a spot for a member. The capacity check and the insert run
// in one transaction so concurrent bookings cannot oversell the class. A
// member with an active booking gets it back unchanged.
func (s *Service) Book(ctx context.Context, sessionID int64, req BookRequest) (*BookingResponse, error) {
	var booking *scheduling.Booking
	err := s.scope.Execute(ctx, func(repos BookingRepositories) error {
		session, err := repos.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsBookable(time.Now()) {
			return shared.NewDomainError("INVALID_STATE", "La clase no admite reservas")
		}

		existing, err := repos.Bookings().FindActive(ctx, sessionID, req.MemberID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			booking = existing
			return nil
		}

		taken, err := repos.Bookings().CountActive(ctx, sessionID)
		if err != nil {
			return err
		}
		if taken >= int64(session.Capacity) {
			return shared.NewDomainError("CONFLICT", "La clase está completa")
		}

		booking, err = scheduling.NewBooking(sessionID, req.MemberID)
		if err != nil {
			return err
		}
		return repos.Bookings().Save(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	resp := ToBookingResponse(booking)
	return &resp, nil
}

// CancelBooking frees a member's spot
func (s *Service) CancelBooking(ctx context.Context, bookingID int64) (*BookingResponse, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.Cancel(); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}
	resp := ToBookingResponse(booking)
	return &resp, nil
}

// MarkAttendance records whether the member showed up
func (s *Service) MarkAttendance(ctx context.Context, bookingID int64, attended bool) (*BookingResponse, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.MarkAttendance(attended); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}
	resp := ToBookingResponse(booking)
	return &resp, nil
}

// Attendees lists a session's bookings
func (s *Service) Attendees(ctx context.Context, sessionID int64) ([]BookingResponse, error) {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	return responses, nil
}
