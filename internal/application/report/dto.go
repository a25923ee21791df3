package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymhub/backend/internal/domain/report"
)

// MeasurementsRequest carries the evaluation figures
type MeasurementsRequest struct {
	WeightKg      decimal.Decimal `json:"weight_kg" binding:"required"`
	HeightCm      decimal.Decimal `json:"height_cm" binding:"required"`
	BodyFatPct    decimal.Decimal `json:"body_fat_pct"`
	RestingHR     int             `json:"resting_hr"`
	BloodPressure string          `json:"blood_pressure"`
}

// CreateReportRequest creates a draft health evaluation
type CreateReportRequest struct {
	MemberName     string              `json:"member_name" binding:"required,max=150"`
	MemberDocument string              `json:"member_document" binding:"required,max=20"`
	Location       string              `json:"location" binding:"required,max=80"`
	Evaluator      string              `json:"evaluator" binding:"required,max=100"`
	Measurements   MeasurementsRequest `json:"measurements" binding:"required"`
	Goals          string              `json:"goals"`
	Narrative      string              `json:"narrative"`
}

// ReportResponse is the wire representation of a health report
type ReportResponse struct {
	ID             int64           `json:"id"`
	MemberName     string          `json:"member_name"`
	MemberDocument string          `json:"member_document"`
	Location       string          `json:"location"`
	Evaluator      string          `json:"evaluator"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	HeightCm       decimal.Decimal `json:"height_cm"`
	BodyFatPct     decimal.Decimal `json:"body_fat_pct"`
	RestingHR      int             `json:"resting_hr"`
	BloodPressure  string          `json:"blood_pressure"`
	BMI            decimal.Decimal `json:"bmi"`
	Goals          string          `json:"goals"`
	Narrative      string          `json:"narrative"`
	Estado         string          `json:"estado"`
	RenderedAt     *time.Time      `json:"rendered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToReportResponse converts a domain report to its response DTO
func ToReportResponse(r *report.HealthReport) ReportResponse {
	return ReportResponse{
		ID:             r.ID,
		MemberName:     r.MemberName,
		MemberDocument: r.MemberDocument,
		Location:       r.Location,
		Evaluator:      r.Evaluator,
		WeightKg:       r.Measurements.WeightKg,
		HeightCm:       r.Measurements.HeightCm,
		BodyFatPct:     r.Measurements.BodyFatPct,
		RestingHR:      r.Measurements.RestingHR,
		BloodPressure:  r.Measurements.BloodPressure,
		BMI:            r.Measurements.BMI(),
		Goals:          r.Goals,
		Narrative:      r.Narrative,
		Estado:         string(r.Status),
		RenderedAt:     r.RenderedAt,
		CreatedAt:      r.CreatedAt,
	}
}

// ReportListResponse is a paginated report listing
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
}

// PDFDocument is a rendered report ready to stream to the client
type PDFDocument struct {
	FileName string
	Content  []byte
}
