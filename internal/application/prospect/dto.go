package prospect

import (
	"time"

	"github.com/gymhub/backend/internal/domain/prospect"
)

// CreateProspectRequest represents a request to register a sales lead
type CreateProspectRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=150"`
	Phone  string `json:"phone" binding:"max=40"`
	Email  string `json:"email" binding:"omitempty,email,max=150"`
	Source string `json:"source" binding:"max=60"`
}

// AdvanceProspectRequest moves a prospect through the pipeline
type AdvanceProspectRequest struct {
	Status string `json:"status" binding:"required,oneof=CONTACTADO PRUEBA GANADO PERDIDO"`
	Reason string `json:"reason" binding:"max=200"`
}

// AddNoteRequest appends a dated note to a prospect
type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ProspectResponse represents a prospect in API responses
type ProspectResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	LostReason  string     `json:"lost_reason,omitempty"`
	ContactedAt *time.Time `json:"contacted_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToProspectResponse maps a prospect to its response shape
func ToProspectResponse(p *prospect.Prospect) ProspectResponse {
	return ProspectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Phone:       p.Phone,
		Email:       p.Email,
		Source:      p.Source,
		Status:      string(p.Status),
		Notes:       p.Notes,
		LostReason:  p.LostReason,
		ContactedAt: p.ContactedAt,
		ClosedAt:    p.ClosedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PipelineCountsResponse reports how many prospects sit in each stage
type PipelineCountsResponse struct {
	Counts map[string]int64 `json:"counts"`
}
