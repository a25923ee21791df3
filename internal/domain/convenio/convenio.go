package convenio

import (
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ConvenioStatus represents the status of a convenio
type ConvenioStatus string

const (
	ConvenioStatusActive    ConvenioStatus = "ACTIVO"
	ConvenioStatusSuspended ConvenioStatus = "SUSPENDIDO"
)

// Convenio represents an external partner organization holding a corporate
// agreement with the gym. It is the aggregate root for the convenio context.
type Convenio struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null"`
	CUIT         string          `gorm:"type:varchar(20);uniqueIndex"`
	ContactName  string          `gorm:"type:varchar(100)"`
	ContactEmail string          `gorm:"type:varchar(200)"`
	ContactPhone string          `gorm:"type:varchar(50)"`
	Status       ConvenioStatus  `gorm:"type:varchar(20);not null;default:'ACTIVO'"`
	MemberFee    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // monthly fee billed per active member
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Convenio) TableName() string {
	return "convenios"
}

// NewConvenio creates a new convenio with required fields
func NewConvenio(name, cuit string) (*Convenio, error) {
	if err := validateConvenioName(name); err != nil {
		return nil, err
	}
	if err := validateCUIT(cuit); err != nil {
		return nil, err
	}

	return &Convenio{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CUIT:              cuit,
		Status:            ConvenioStatusActive,
		MemberFee:         decimal.Zero,
	}, nil
}

// Update updates the convenio's basic information
func (c *Convenio) Update(name string) error {
	if err := validateConvenioName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact sets the convenio's contact information
func (c *Convenio) SetContact(name, email, phone string) error {
	if name != "" && len(name) > 100 {
		return shared.NewDomainError("VALIDATION", "El nombre de contacto no puede superar 100 caracteres")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("VALIDATION", "El email no puede superar 200 caracteres")
	}
	c.ContactName = name
	c.ContactEmail = email
	c.ContactPhone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetMemberFee sets the per-member monthly fee used for billing
func (c *Convenio) SetMemberFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("VALIDATION", "La cuota por socio no puede ser negativa")
	}
	c.MemberFee = fee
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (c *Convenio) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Suspend suspends the convenio
func (c *Convenio) Suspend() error {
	if c.Status == ConvenioStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "El convenio ya está suspendido")
	}
	c.Status = ConvenioStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Activate reactivates the convenio
func (c *Convenio) Activate() error {
	if c.Status == ConvenioStatusActive {
		return shared.NewDomainError("INVALID_STATE", "El convenio ya está activo")
	}
	c.Status = ConvenioStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsActive returns true if the convenio is active
func (c *Convenio) IsActive() bool {
	return c.Status == ConvenioStatusActive
}

func validateConvenioName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION", "El nombre del convenio no puede estar vacío")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION", "El nombre del convenio no puede superar 200 caracteres")
	}
	return nil
}

func validateCUIT(cuit string) error {
	if cuit == "" {
		return nil
	}
	if len(cuit) > 20 {
		return shared.NewDomainError("VALIDATION", "CUIT inválido")
	}
	for _, r := range cuit {
		if !((r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("VALIDATION", "CUIT inválido")
		}
	}
	return nil
}
