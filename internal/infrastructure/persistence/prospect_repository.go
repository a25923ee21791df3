package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/prospect"
	"github.com/gymhub/backend/internal/domain/shared"
)

// GormProspectRepository implements prospect.Repository using GORM
type GormProspectRepository struct {
	db *gorm.DB
}

// NewGormProspectRepository creates a new GormProspectRepository
func NewGormProspectRepository(db *gorm.DB) *GormProspectRepository {
	return &GormProspectRepository{db: db}
}

// FindByID finds a prospect by its ID
func (r *GormProspectRepository) FindByID(ctx context.Context, id int64) (*prospect.Prospect, error) {
	var p prospect.Prospect
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all prospects matching the filter, with the total count
func (r *GormProspectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]prospect.Prospect, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&prospect.Prospect{}), filter)
}

// FindByStatus finds prospects in a pipeline stage
func (r *GormProspectRepository) FindByStatus(ctx context.Context, status prospect.Status, filter shared.Filter) ([]prospect.Prospect, int64, error) {
	query := r.db.WithContext(ctx).Model(&prospect.Prospect{}).Where("status = ?", status)
	return r.list(ctx, query, filter)
}

func (r *GormProspectRepository) list(ctx context.Context, query *gorm.DB, filter shared.Filter) ([]prospect.Prospect, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at desc"
	}

	var prospects []prospect.Prospect
	if err := query.Order(orderBy).Limit(filter.Limit).Offset(filter.Offset).Find(&prospects).Error; err != nil {
		return nil, 0, err
	}
	return prospects, total, nil
}

// Save persists a prospect
func (r *GormProspectRepository) Save(ctx context.Context, p *prospect.Prospect) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a prospect
func (r *GormProspectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&prospect.Prospect{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus returns the pipeline funnel counts
func (r *GormProspectRepository) CountByStatus(ctx context.Context) (map[prospect.Status]int64, error) {
	type row struct {
		Status prospect.Status
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&prospect.Prospect{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[prospect.Status]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
