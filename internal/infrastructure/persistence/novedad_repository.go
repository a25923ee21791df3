package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gymhub/backend/internal/domain/notification"
	"github.com/gymhub/backend/internal/domain/shared"
)

// GormNovedadRepository implements notification.NovedadRepository using GORM
type GormNovedadRepository struct {
	db *gorm.DB
}

// NewGormNovedadRepository creates a new GormNovedadRepository
func NewGormNovedadRepository(db *gorm.DB) *GormNovedadRepository {
	return &GormNovedadRepository{db: db}
}

// FindByID finds a novedad by its ID
func (r *GormNovedadRepository) FindByID(ctx context.Context, id int64) (*notification.Novedad, error) {
	var n notification.Novedad
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindVisible lists novedades inside their publication window for an audience.
// TODOS entries are always included.
func (r *GormNovedadRepository) FindVisible(ctx context.Context, audience notification.Audience, now time.Time) ([]notification.Novedad, error) {
	var novedades []notification.Novedad
	if err := r.db.WithContext(ctx).
		Where("publish_from <= ?", now).
		Where("publish_to IS NULL OR publish_to > ?", now).
		Where("audience IN ?", []notification.Audience{notification.AudienceAll, audience}).
		Order("pinned desc, publish_from desc").
		Find(&novedades).Error; err != nil {
		return nil, err
	}
	return novedades, nil
}

// FindAll finds all novedades, with the total count
func (r *GormNovedadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Novedad, int64, error) {
	query := r.db.WithContext(ctx).Model(&notification.Novedad{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var novedades []notification.Novedad
	if err := query.Order("publish_from desc").Limit(filter.Limit).Offset(filter.Offset).Find(&novedades).Error; err != nil {
		return nil, 0, err
	}
	return novedades, total, nil
}

// Save persists a novedad
func (r *GormNovedadRepository) Save(ctx context.Context, n *notification.Novedad) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// Delete removes a novedad
func (r *GormNovedadRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&notification.Novedad{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
