package report

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymhub/backend/internal/domain/shared"
)

// ReportStatus tracks whether the PDF was generated
type ReportStatus string

const (
	ReportStatusDraft    ReportStatus = "BORRADOR"
	ReportStatusRendered ReportStatus = "GENERADO"
)

// Measurements holds the evaluation figures for a health report
type Measurements struct {
	WeightKg      decimal.Decimal `gorm:"type:decimal(6,2)"`
	HeightCm      decimal.Decimal `gorm:"type:decimal(5,1)"`
	BodyFatPct    decimal.Decimal `gorm:"type:decimal(5,2)"`
	RestingHR     int
	BloodPressure string `gorm:"type:varchar(20)"` // "120/80"
}

// BMI computes body mass index from weight and height
func (m Measurements) BMI() decimal.Decimal {
	if m.HeightCm.IsZero() {
		return decimal.Zero
	}
	heightM := m.HeightCm.Div(decimal.NewFromInt(100))
	return m.WeightKg.Div(heightM.Mul(heightM)).Round(1)
}

// HealthReport is a member fitness evaluation that can be rendered to a
// branded PDF and archived in object storage.
type HealthReport struct {
	shared.BaseAggregateRoot
	MemberName     string       `gorm:"type:varchar(150);not null"`
	MemberDocument string       `gorm:"type:varchar(20);not null;index"`
	Location       string       `gorm:"type:varchar(80);not null"`
	Evaluator      string       `gorm:"type:varchar(100);not null"`
	Measurements   Measurements `gorm:"embedded;embeddedPrefix:meas_"`
	Goals          string       `gorm:"type:text"`
	Narrative      string       `gorm:"type:text"`
	Status         ReportStatus `gorm:"type:varchar(20);not null;default:'BORRADOR'"`
	ObjectKey      string       `gorm:"type:varchar(200)"` // set once the PDF is stored
	RenderedAt     *time.Time
}

// TableName returns the table name for GORM
func (HealthReport) TableName() string {
	return "health_reports"
}

// NewHealthReport creates a draft evaluation
func NewHealthReport(memberName, memberDocument, location, evaluator string, meas Measurements) (*HealthReport, error) {
	memberName = strings.TrimSpace(memberName)
	memberDocument = strings.TrimSpace(memberDocument)
	location = strings.TrimSpace(location)
	evaluator = strings.TrimSpace(evaluator)
	if memberName == "" {
		return nil, shared.NewDomainError("VALIDATION", "El nombre del socio no puede estar vacío")
	}
	if memberDocument == "" {
		return nil, shared.NewDomainError("VALIDATION", "El documento del socio no puede estar vacío")
	}
	if location == "" {
		return nil, shared.NewDomainError("VALIDATION", "La sede no puede estar vacía")
	}
	if evaluator == "" {
		return nil, shared.NewDomainError("VALIDATION", "El evaluador no puede estar vacío")
	}
	if meas.WeightKg.IsNegative() || meas.HeightCm.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "Las mediciones no pueden ser negativas")
	}
	return &HealthReport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberName:        memberName,
		MemberDocument:    memberDocument,
		Location:          location,
		Evaluator:         evaluator,
		Measurements:      meas,
		Status:            ReportStatusDraft,
	}, nil
}

// SetNarrative replaces goals and narrative text
func (r *HealthReport) SetNarrative(goals, narrative string) {
	r.Goals = strings.TrimSpace(goals)
	r.Narrative = strings.TrimSpace(narrative)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// MarkRendered records where the generated PDF lives
func (r *HealthReport) MarkRendered(objectKey string) error {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return shared.NewDomainError("VALIDATION", "La clave del objeto no puede estar vacía")
	}
	now := time.Now()
	r.ObjectKey = objectKey
	r.Status = ReportStatusRendered
	r.RenderedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// IsRendered reports whether a PDF exists for the report
func (r *HealthReport) IsRendered() bool {
	return r.Status == ReportStatusRendered && r.ObjectKey != ""
}

// Repository provides access to health reports
type Repository interface {
	FindByID(ctx context.Context, id int64) (*HealthReport, error)
	FindByMemberDocument(ctx context.Context, document string, filter shared.Filter) ([]HealthReport, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]HealthReport, int64, error)
	Save(ctx context.Context, r *HealthReport) error
}
