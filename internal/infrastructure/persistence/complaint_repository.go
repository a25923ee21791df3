package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/complaint"
	"github.com/gymhub/backend/internal/domain/shared"
)

// GormComplaintRepository implements complaint.Repository using GORM
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository creates a new GormComplaintRepository
func NewGormComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// FindByID finds a complaint by its ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id int64) (*complaint.Complaint, error) {
	var c complaint.Complaint
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds all complaints matching the filter, with the total count
func (r *GormComplaintRepository) FindAll(ctx context.Context, filter shared.Filter) ([]complaint.Complaint, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&complaint.Complaint{}), filter)
}

// FindByStatus finds complaints in a handling status
func (r *GormComplaintRepository) FindByStatus(ctx context.Context, status complaint.Status, filter shared.Filter) ([]complaint.Complaint, int64, error) {
	query := r.db.WithContext(ctx).Model(&complaint.Complaint{}).Where("status = ?", status)
	return r.list(query, filter)
}

func (r *GormComplaintRepository) list(query *gorm.DB, filter shared.Filter) ([]complaint.Complaint, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at desc"
	}

	var complaints []complaint.Complaint
	if err := query.Order(orderBy).Limit(filter.Limit).Offset(filter.Offset).Find(&complaints).Error; err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

// Save persists a complaint
func (r *GormComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	return r.db.WithContext(ctx).Save(c).Error
}
