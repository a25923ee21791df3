package prospect

import (
	"context"

	"github.com/gymhub/backend/internal/domain/prospect"
	"github.com/gymhub/backend/internal/domain/shared"
)

// Service handles the sales-prospect pipeline
type Service struct {
	prospects prospect.Repository
}

// NewService creates a new prospect Service
func NewService(prospects prospect.Repository) *Service {
	return &Service{prospects: prospects}
}

// Create registers a new lead at the top of the pipeline
func (s *Service) Create(ctx context.Context, req CreateProspectRequest) (*ProspectResponse, error) {
	p, err := prospect.NewProspect(req.Name, req.Phone, req.Email, req.Source)
	if err != nil {
		return nil, err
	}
	if err := s.prospects.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProspectResponse(p)
	return &resp, nil
}

// GetByID retrieves a prospect by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*ProspectResponse, error) {
	p, err := s.prospects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProspectResponse(p)
	return &resp, nil
}

// List returns prospects, optionally filtered by pipeline stage
func (s *Service) List(ctx context.Context, status string, filter shared.Filter) ([]ProspectResponse, int64, error) {
	var (
		prospects []prospect.Prospect
		total     int64
		err       error
	)
	if status != "" {
		prospects, total, err = s.prospects.FindByStatus(ctx, prospect.Status(status), filter)
	} else {
		prospects, total, err = s.prospects.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProspectResponse, len(prospects))
	for i := range prospects {
		responses[i] = ToProspectResponse(&prospects[i])
	}
	return responses, total, nil
}

// Advance moves a prospect to the next pipeline stage
func (s *Service) Advance(ctx context.Context, id int64, req AdvanceProspectRequest) (*ProspectResponse, error) {
	p, err := s.prospects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Advance(prospect.Status(req.Status), req.Reason); err != nil {
		return nil, err
	}
	if err := s.prospects.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProspectResponse(p)
	return &resp, nil
}

// AddNote appends a dated note to a prospect
func (s *Service) AddNote(ctx context.Context, id int64, req AddNoteRequest) (*ProspectResponse, error) {
	p, err := s.prospects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.AppendNote(req.Note); err != nil {
		return nil, err
	}
	if err := s.prospects.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProspectResponse(p)
	return &resp, nil
}

// Delete removes a prospect
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.prospects.Delete(ctx, id)
}

// PipelineCounts reports how many prospects sit in each stage
func (s *Service) PipelineCounts(ctx context.Context) (*PipelineCountsResponse, error) {
	counts, err := s.prospects.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	resp := &PipelineCountsResponse{Counts: make(map[string]int64, len(counts))}
	for status, count := range counts {
		resp.Counts[string(status)] = count
	}
	return resp, nil
}
