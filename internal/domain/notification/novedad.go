package notification

import (
	"context"
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// Audience selects who a novedad is shown to
type Audience string

const (
	AudienceAll       Audience = "TODOS"
	AudienceStaff     Audience = "STAFF"
	AudienceConvenios Audience = "CONVENIOS"
)

// Novedad is a broadcast announcement shown on the dashboard for its
// publication window.
type Novedad struct {
	shared.BaseAggregateRoot
	Title       string     `gorm:"type:varchar(200);not null"`
	Body        string     `gorm:"type:text;not null"`
	Audience    Audience   `gorm:"type:varchar(20);not null;default:'TODOS'"`
	PublishedBy string     `gorm:"type:varchar(100);not null"`
	PublishFrom time.Time  `gorm:"not null;index"`
	PublishTo   *time.Time
	Pinned      bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Novedad) TableName() string {
	return "novedades"
}

// NewNovedad publishes an announcement starting now
func NewNovedad(title, body, publishedBy string, audience Audience) (*Novedad, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, shared.NewDomainError("VALIDATION", "El título no puede estar vacío")
	}
	if body == "" {
		return nil, shared.NewDomainError("VALIDATION", "El cuerpo no puede estar vacío")
	}
	if publishedBy = strings.TrimSpace(publishedBy); publishedBy == "" {
		return nil, shared.NewDomainError("VALIDATION", "El autor no puede estar vacío")
	}
	switch audience {
	case AudienceAll, AudienceStaff, AudienceConvenios:
	default:
		return nil, shared.NewDomainError("VALIDATION", "Audiencia desconocida: "+string(audience))
	}
	return &Novedad{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Body:              body,
		Audience:          audience,
		PublishedBy:       publishedBy,
		PublishFrom:       time.Now(),
	}, nil
}

// Expire ends the publication window at ts
func (n *Novedad) Expire(ts time.Time) error {
	if ts.Before(n.PublishFrom) {
		return shared.NewDomainError("VALIDATION", "La fecha de cierre es anterior a la publicación")
	}
	n.PublishTo = &ts
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
	return nil
}

// Pin keeps the novedad at the top of the dashboard
func (n *Novedad) Pin(pinned bool) {
	n.Pinned = pinned
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}

// IsVisible reports whether the novedad is inside its publication window
func (n *Novedad) IsVisible(now time.Time) bool {
	if now.Before(n.PublishFrom) {
		return false
	}
	return n.PublishTo == nil || now.Before(*n.PublishTo)
}

// NovedadRepository provides access to announcements
type NovedadRepository interface {
	FindByID(ctx context.Context, id int64) (*Novedad, error)
	FindVisible(ctx context.Context, audience Audience, now time.Time) ([]Novedad, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Novedad, int64, error)
	Save(ctx context.Context, n *Novedad) error
	Delete(ctx context.Context, id int64) error
}
