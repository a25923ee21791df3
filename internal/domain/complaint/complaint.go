package complaint

import (
	"context"
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// Status is the handling status of a complaint
type Status string

const (
	StatusOpen       Status = "ABIERTO"
	StatusInProgress Status = "EN_PROCESO"
	StatusResolved   Status = "RESUELTO"
)

// Category groups complaints for reporting
type Category string

const (
	CategoryFacilities Category = "INSTALACIONES"
	CategoryStaff      Category = "PERSONAL"
	CategoryBilling    Category = "FACTURACION"
	CategoryOther      Category = "OTRO"
)

// Complaint is a member or partner complaint tracked to resolution
type Complaint struct {
	shared.BaseAggregateRoot
	ReporterName string   `gorm:"type:varchar(150);not null"`
	ConvenioID   *int64   `gorm:"index"` // set when filed on behalf of a partner
	Category     Category `gorm:"type:varchar(30);not null;default:'OTRO'"`
	Subject      string   `gorm:"type:varchar(200);not null"`
	Detail       string   `gorm:"type:text;not null"`
	Status       Status   `gorm:"type:varchar(20);not null;default:'ABIERTO';index"`
	AssignedTo   string   `gorm:"type:varchar(100)"`
	Resolution   string   `gorm:"type:text"`
	ResolvedAt   *time.Time
}

// TableName returns the table name for GORM
func (Complaint) TableName() string {
	return "complaints"
}

// NewComplaint files a complaint in ABIERTO status
func NewComplaint(reporterName string, convenioID *int64, category Category, subject, detail string) (*Complaint, error) {
	reporterName = strings.TrimSpace(reporterName)
	subject = strings.TrimSpace(subject)
	detail = strings.TrimSpace(detail)
	if reporterName == "" {
		return nil, shared.NewDomainError("VALIDATION", "El nombre del denunciante no puede estar vacío")
	}
	if subject == "" {
		return nil, shared.NewDomainError("VALIDATION", "El asunto no puede estar vacío")
	}
	if detail == "" {
		return nil, shared.NewDomainError("VALIDATION", "El detalle no puede estar vacío")
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return &Complaint{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReporterName:      reporterName,
		ConvenioID:        convenioID,
		Category:          category,
		Subject:           subject,
		Detail:            detail,
		Status:            StatusOpen,
	}, nil
}

// Assign puts the complaint in progress under a handler
func (c *Complaint) Assign(handler string) error {
	handler = strings.TrimSpace(handler)
	if handler == "" {
		return shared.NewDomainError("VALIDATION", "El responsable no puede estar vacío")
	}
	if c.Status == StatusResolved {
		return shared.NewDomainError("INVALID_STATE", "El reclamo ya está resuelto")
	}
	c.AssignedTo = handler
	c.Status = StatusInProgress
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Resolve closes the complaint with a resolution note
func (c *Complaint) Resolve(resolution string) error {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return shared.NewDomainError("VALIDATION", "La resolución no puede estar vacía")
	}
	if c.Status == StatusResolved {
		return shared.NewDomainError("INVALID_STATE", "El reclamo ya está resuelto")
	}
	now := time.Now()
	c.Resolution = resolution
	c.Status = StatusResolved
	c.ResolvedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()
	return nil
}

// Reopen returns a resolved complaint to in-progress, clearing the
// resolution stamp
func (c *Complaint) Reopen() error {
	if c.Status != StatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Sólo se puede reabrir un reclamo resuelto")
	}
	c.Status = StatusInProgress
	c.Resolution = ""
	c.ResolvedAt = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func validateCategory(cat Category) error {
	switch cat {
	case CategoryFacilities, CategoryStaff, CategoryBilling, CategoryOther:
		return nil
	default:
		return shared.NewDomainError("VALIDATION", "Categoría de reclamo desconocida: "+string(cat))
	}
}

// Repository provides access to complaints
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Complaint, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Complaint, int64, error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Complaint, int64, error)
	Save(ctx context.Context, c *Complaint) error
}
