package complaint

import (
	"context"

	"github.com/gymhub/backend/internal/domain/complaint"
	"github.com/gymhub/backend/internal/domain/shared"
)

// Service handles complaint intake and resolution
type Service struct {
	complaints complaint.Repository
}

// NewService creates a new complaint Service
func NewService(complaints complaint.Repository) *Service {
	return &Service{complaints: complaints}
}

// Create files a complaint
func (s *Service) Create(ctx context.Context, req CreateComplaintRequest) (*ComplaintResponse, error) {
	c, err := complaint.NewComplaint(req.ReporterName, req.ConvenioID, complaint.Category(req.Category), req.Subject, req.Detail)
	if err != nil {
		return nil, err
	}
	if err := s.complaints.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToComplaintResponse(c)
	return &resp, nil
}

// GetByID retrieves a complaint by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*ComplaintResponse, error) {
	c, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToComplaintResponse(c)
	return &resp, nil
}

// List returns complaints, optionally filtered by status
func (s *Service) List(ctx context.Context, status string, filter shared.Filter) ([]ComplaintResponse, int64, error) {
	var (
		complaints []complaint.Complaint
		total      int64
		err        error
	)
	if status != "" {
		complaints, total, err = s.complaints.FindByStatus(ctx, complaint.Status(status), filter)
	} else {
		complaints, total, err = s.complaints.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ComplaintResponse, len(complaints))
	for i := range complaints {
		responses[i] = ToComplaintResponse(&complaints[i])
	}
	return responses, total, nil
}

// Assign puts a complaint in progress under a handler
func (s *Service) Assign(ctx context.Context, id int64, req AssignComplaintRequest) (*ComplaintResponse, error) {
	return s.mutate(ctx, id, func(c *complaint.Complaint) error {
		return c.Assign(req.AssignedTo)
	})
}

// Resolve closes a complaint with a resolution note
func (s *Service) Resolve(ctx context.Context, id int64, req ResolveComplaintRequest) (*ComplaintResponse, error) {
	return s.mutate(ctx, id, func(c *complaint.Complaint) error {
		return c.Resolve(req.Resolution)
	})
}

// Reopen returns a resolved complaint to in-progress
func (s *Service) Reopen(ctx context.Context, id int64) (*ComplaintResponse, error) {
	return s.mutate(ctx, id, (*complaint.Complaint).Reopen)
}

func (s *Service) mutate(ctx context.Context, id int64, fn func(*complaint.Complaint) error) (*ComplaintResponse, error) {
	c, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.complaints.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToComplaintResponse(c)
	return &resp, nil
}
