package complaint

import (
	"time"

	"github.com/gymhub/backend/internal/domain/complaint"
)

// CreateComplaintRequest files a complaint
type CreateComplaintRequest struct {
	ReporterName string `json:"reporter_name" binding:"required,min=1,max=150"`
	ConvenioID   *int64 `json:"convenio_id" binding:"omitempty,gt=0"`
	Category     string `json:"category" binding:"required,oneof=INSTALACIONES PERSONAL FACTURACION OTRO"`
	Subject      string `json:"subject" binding:"required,min=1,max=200"`
	Detail       string `json:"detail" binding:"required"`
}

// AssignComplaintRequest puts a complaint in progress under a handler
type AssignComplaintRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required,min=1,max=100"`
}

// ResolveComplaintRequest closes a complaint with a resolution note
type ResolveComplaintRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// ComplaintResponse represents a complaint in API responses
type ComplaintResponse struct {
	ID           int64      `json:"id"`
	ReporterName string     `json:"reporter_name"`
	ConvenioID   *int64     `json:"convenio_id"`
	Category     string     `json:"category"`
	Subject      string     `json:"subject"`
	Detail       string     `json:"detail"`
	Status       string     `json:"status"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	Resolution   string     `json:"resolution,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToComplaintResponse maps a complaint to its response shape
func ToComplaintResponse(c *complaint.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:           c.ID,
		ReporterName: c.ReporterName,
		ConvenioID:   c.ConvenioID,
		Category:     string(c.Category),
		Subject:      c.Subject,
		Detail:       c.Detail,
		Status:       string(c.Status),
		AssignedTo:   c.AssignedTo,
		Resolution:   c.Resolution,
		ResolvedAt:   c.ResolvedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
