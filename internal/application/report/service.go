package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gymhub/backend/internal/domain/report"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/infrastructure/pdf"
)

// ObjectStorage archives rendered PDFs
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Service manages member health evaluations and their PDF lifecycle
type Service struct {
	reports  report.Repository
	engine   *pdf.TemplateEngine
	renderer pdf.Renderer
	storage  ObjectStorage
	logger   *zap.Logger
}

// NewService creates a report application service
func NewService(reports report.Repository, engine *pdf.TemplateEngine, renderer pdf.Renderer, storage ObjectStorage, logger *zap.Logger) *Service {
	return &Service{
		reports:  reports,
		engine:   engine,
		renderer: renderer,
		storage:  storage,
		logger:   logger,
	}
}

// Create saves a draft health report
func (s *Service) Create(ctx context.Context, req CreateReportRequest) (*ReportResponse, error) {
	healthReport, err := report.NewHealthReport(req.MemberName, req.MemberDocument, req.Location, req.Evaluator, report.Measurements{
		WeightKg:      req.Measurements.WeightKg,
		HeightCm:      req.Measurements.HeightCm,
		BodyFatPct:    req.Measurements.BodyFatPct,
		RestingHR:     req.Measurements.RestingHR,
		BloodPressure: req.Measurements.BloodPressure,
	})
	if err != nil {
		return nil, err
	}
	if req.Goals != "" || req.Narrative != "" {
		healthReport.SetNarrative(req.Goals, req.Narrative)
	}
	if err := s.reports.Save(ctx, healthReport); err != nil {
		return nil, err
	}
	resp := ToReportResponse(healthReport)
	return &resp, nil
}

// GetByID returns a single report
func (s *Service) GetByID(ctx context.Context, id int64) (*ReportResponse, error) {
	healthReport, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReportResponse(healthReport)
	return &resp, nil
}

// ListByMember returns a member's evaluation history, newest first
func (s *Service) ListByMember(ctx context.Context, document string, filter shared.Filter) (*ReportListResponse, error) {
	reports, total, err := s.reports.FindByMemberDocument(ctx, document, filter)
	if err != nil {
		return nil, err
	}
	return buildListResponse(reports, total), nil
}

// List returns all reports
func (s *Service) List(ctx context.Context, filter shared.Filter) (*ReportListResponse, error) {
	reports, total, err := s.reports.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildListResponse(reports, total), nil
}

// Render generates the branded PDF for a report, archives it in object
// storage and records its key. Rendering again replaces the stored file.
func (s *Service) Render(ctx context.Context, id int64) (*ReportResponse, error) {
	healthReport, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	html, err := s.engine.RenderHealthReport(healthReport)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL", "No se pudo generar el informe")
	}
	content, err := s.renderer.Render(ctx, html)
	if err != nil {
		s.logger.Error("pdf render failed", zap.Int64("report_id", id), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL", "No se pudo generar el PDF")
	}

	key := healthReport.ObjectKey
	if key == "" {
		key = fmt.Sprintf("hammerx/%s.pdf", uuid.NewString())
	}
	if err := s.storage.Upload(ctx, key, content, "application/pdf"); err != nil {
		s.logger.Error("pdf upload failed", zap.Int64("report_id", id), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL", "No se pudo archivar el PDF")
	}
	if err := healthReport.MarkRendered(key); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, healthReport); err != nil {
		return nil, err
	}

	s.logger.Info("report rendered",
		zap.Int64("report_id", id),
		zap.String("object_key", key),
		zap.Int("size", len(content)))
	resp := ToReportResponse(healthReport)
	return &resp, nil
}

// Download fetches the archived PDF for a rendered report
func (s *Service) Download(ctx context.Context, id int64) (*PDFDocument, error) {
	healthReport, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !healthReport.IsRendered() {
		return nil, shared.NewDomainError("INVALID_STATE", "El informe todavía no fue generado")
	}
	content, err := s.storage.Download(ctx, healthReport.ObjectKey)
	if err != nil {
		s.logger.Error("pdf download failed", zap.Int64("report_id", id), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL", "No se pudo recuperar el PDF")
	}
	return &PDFDocument{
		FileName: fmt.Sprintf("informe-%d.pdf", healthReport.ID),
		Content:  content,
	}, nil
}

func buildListResponse(reports []report.HealthReport, total int64) *ReportListResponse {
	responses := make([]ReportResponse, len(reports))
	for i := range reports {
		responses[i] = ToReportResponse(&reports[i])
	}
	return &ReportListResponse{Reports: responses, Total: total}
}
