package convenio

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
)

// ConvenioService handles convenio CRUD and billing quotes
type ConvenioService struct {
	convenios convenio.ConvenioRepository
}

// NewConvenioService creates a new ConvenioService
func NewConvenioService(convenios convenio.ConvenioRepository) *ConvenioService {
	return &ConvenioService{convenios: convenios}
}

// Create creates a new convenio
func (s *ConvenioService) Create(ctx context.Context, req CreateConvenioRequest) (*ConvenioResponse, error) {
	c, err := convenio.NewConvenio(req.Name, req.CUIT)
	if err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.ContactEmail != "" || req.ContactPhone != "" {
		if err := c.SetContact(req.ContactName, req.ContactEmail, req.ContactPhone); err != nil {
			return nil, err
		}
	}
	if req.MemberFee != nil {
		if err := c.SetMemberFee(*req.MemberFee); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		c.SetNotes(req.Notes)
	}
	if err := s.convenios.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToConvenioResponse(c)
	return &resp, nil
}

// GetByID retrieves a convenio by ID
func (s *ConvenioService) GetByID(ctx context.Context, id int64) (*ConvenioResponse, error) {
	c, err := s.convenios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToConvenioResponse(c)
	return &resp, nil
}

// List returns convenios matching the filter, with the total count
func (s *ConvenioService) List(ctx context.Context, filter shared.Filter) ([]ConvenioResponse, int64, error) {
	convenios, total, err := s.convenios.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ConvenioResponse, len(convenios))
	for i := range convenios {
		responses[i] = ToConvenioResponse(&convenios[i])
	}
	return responses, total, nil
}

// Update applies a partial update to a convenio
func (s *ConvenioService) Update(ctx context.Context, id int64, req UpdateConvenioRequest) (*ConvenioResponse, error) {
	c, err := s.convenios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := c.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.ContactEmail != nil || req.ContactPhone != nil {
		name, email, phone := c.ContactName, c.ContactEmail, c.ContactPhone
		if req.ContactName != nil {
			name = *req.ContactName
		}
		if req.ContactEmail != nil {
			email = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		if err := c.SetContact(name, email, phone); err != nil {
			return nil, err
		}
	}
	if req.MemberFee != nil {
		if err := c.SetMemberFee(*req.MemberFee); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}
	if err := s.convenios.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToConvenioResponse(c)
	return &resp, nil
}

// Delete removes a convenio
func (s *ConvenioService) Delete(ctx context.Context, id int64) error {
	return s.convenios.Delete(ctx, id)
}

// Suspend suspends a convenio
func (s *ConvenioService) Suspend(ctx context.Context, id int64) (*ConvenioResponse, error) {
	return s.transition(ctx, id, (*convenio.Convenio).Suspend)
}

// Activate reactivates a convenio
func (s *ConvenioService) Activate(ctx context.Context, id int64) (*ConvenioResponse, error) {
	return s.transition(ctx, id, (*convenio.Convenio).Activate)
}

func (s *ConvenioService) transition(ctx context.Context, id int64, fn func(*convenio.Convenio) error) (*ConvenioResponse, error) {
	c, err := s.convenios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.convenios.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToConvenioResponse(c)
	return &resp, nil
}

// ComputeInvoice quotes one month of billing for a convenio: the per-member
// fee times the declared roster size. period uses the "YYYY-MM" form.
func (s *ConvenioService) ComputeInvoice(ctx context.Context, id int64, period string, members int) (*InvoiceResponse, error) {
	if members < 0 {
		return nil, shared.NewDomainError("VALIDATION", "La cantidad de socios no puede ser negativa")
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return nil, shared.NewDomainError("VALIDATION", fmt.Sprintf("Período inválido %q: se espera formato YYYY-MM", period))
	}
	c, err := s.convenios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	total := c.MemberFee.Mul(decimal.NewFromInt(int64(members))).Round(2)
	return &InvoiceResponse{
		ConvenioID: c.ID,
		Period:     period,
		Members:    members,
		MemberFee:  c.MemberFee,
		Total:      total,
	}, nil
}
