package prospect

import (
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// Status is the pipeline stage of a prospect
type Status string

const (
	StatusNew       Status = "NUEVO"
	StatusContacted Status = "CONTACTADO"
	StatusTrial     Status = "PRUEBA"
	StatusWon       Status = "GANADO"
	StatusLost      Status = "PERDIDO"
)

// allowed forward transitions per stage
var transitions = map[Status][]Status{
	StatusNew:       {StatusContacted, StatusLost},
	StatusContacted: {StatusTrial, StatusWon, StatusLost},
	StatusTrial:     {StatusWon, StatusLost},
}

// Prospect is a sales lead moving through the intake pipeline
type Prospect struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(150);not null"`
	Phone       string `gorm:"type:varchar(40)"`
	Email       string `gorm:"type:varchar(150)"`
	Source      string `gorm:"type:varchar(60)"` // walk-in, instagram, referral
	Status      Status `gorm:"type:varchar(20);not null;default:'NUEVO';index"`
	Notes       string `gorm:"type:text"`
	LostReason  string `gorm:"type:varchar(200)"`
	ContactedAt *time.Time
	ClosedAt    *time.Time
}

// TableName returns the table name for GORM
func (Prospect) TableName() string {
	return "prospects"
}

// NewProspect creates a prospect in the NUEVO stage
func NewProspect(name, phone, email, source string) (*Prospect, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "El nombre no puede estar vacío")
	}
	if phone == "" && email == "" {
		return nil, shared.NewDomainError("VALIDATION", "Se requiere teléfono o email de contacto")
	}
	return &Prospect{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             strings.TrimSpace(phone),
		Email:             strings.TrimSpace(strings.ToLower(email)),
		Source:            strings.TrimSpace(source),
		Status:            StatusNew,
	}, nil
}

// Advance moves the prospect to the next pipeline stage
func (p *Prospect) Advance(next Status, reason string) error {
	if !p.canMoveTo(next) {
		return shared.NewDomainError("INVALID_STATE", "Transición de estado no permitida: "+string(p.Status)+" → "+string(next))
	}
	now := time.Now()
	switch next {
	case StatusContacted:
		p.ContactedAt = &now
	case StatusWon:
		p.ClosedAt = &now
	case StatusLost:
		p.ClosedAt = &now
		p.LostReason = strings.TrimSpace(reason)
	}
	p.Status = next
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

func (p *Prospect) canMoveTo(next Status) bool {
	for _, s := range transitions[p.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsClosed reports whether the prospect left the pipeline
func (p *Prospect) IsClosed() bool {
	return p.Status == StatusWon || p.Status == StatusLost
}

// AppendNote appends a dated note to the free-form notes field
func (p *Prospect) AppendNote(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return shared.NewDomainError("VALIDATION", "La nota no puede estar vacía")
	}
	stamp := time.Now().Format("2006-01-02")
	if p.Notes != "" {
		p.Notes += "\n"
	}
	p.Notes += "[" + stamp + "] " + note
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
