package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
)

// GormConvenioRepository implements convenio.ConvenioRepository using GORM
type GormConvenioRepository struct {
	db *gorm.DB
}

// NewGormConvenioRepository creates a new GormConvenioRepository
func NewGormConvenioRepository(db *gorm.DB) *GormConvenioRepository {
	return &GormConvenioRepository{db: db}
}

// FindByID finds a convenio by its ID
func (r *GormConvenioRepository) FindByID(ctx context.Context, id int64) (*convenio.Convenio, error) {
	var c convenio.Convenio
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds all convenios matching the filter, with the total count
func (r *GormConvenioRepository) FindAll(ctx context.Context, filter shared.Filter) ([]convenio.Convenio, int64, error) {
	var convenios []convenio.Convenio
	query := r.db.WithContext(ctx).Model(&convenio.Convenio{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if name, ok := filter.Filters["name"].(string); ok && name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "name asc"
	}
	if err := query.Order(orderBy).Limit(filter.Limit).Offset(filter.Offset).Find(&convenios).Error; err != nil {
		return nil, 0, err
	}
	return convenios, total, nil
}

// Save persists a convenio, inserting or updating as needed
func (r *GormConvenioRepository) Save(ctx context.Context, c *convenio.Convenio) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a convenio
func (r *GormConvenioRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&convenio.Convenio{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether a convenio with the given ID exists
func (r *GormConvenioRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&convenio.Convenio{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
