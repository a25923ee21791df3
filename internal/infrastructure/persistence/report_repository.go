package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/report"
	"github.com/gymhub/backend/internal/domain/shared"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// FindByID finds a health report by its ID
func (r *GormReportRepository) FindByID(ctx context.Context, id int64) (*report.HealthReport, error) {
	var hr report.HealthReport
	if err := r.db.WithContext(ctx).First(&hr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hr, nil
}

// FindByMemberDocument lists a member's reports, newest first
func (r *GormReportRepository) FindByMemberDocument(ctx context.Context, document string, filter shared.Filter) ([]report.HealthReport, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&report.HealthReport{}).
		Where("member_document = ?", strings.TrimSpace(document))
	return r.list(query, filter)
}

// FindAll finds all reports, with the total count
func (r *GormReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]report.HealthReport, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&report.HealthReport{}), filter)
}

func (r *GormReportRepository) list(query *gorm.DB, filter shared.Filter) ([]report.HealthReport, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []report.HealthReport
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(filter.Offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Save persists a health report
func (r *GormReportRepository) Save(ctx context.Context, hr *report.HealthReport) error {
	return r.db.WithContext(ctx).Save(hr).Error
}
