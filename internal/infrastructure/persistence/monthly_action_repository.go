package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// actionConflictColumns is the uniqueness key for monthly action upserts
var actionConflictColumns = []clause.Column{
	{Name: "convenio_id"},
	{Name: "month_start"},
	{Name: "type"},
}

// GormMonthlyActionRepository implements convenio.MonthlyActionRepository using GORM
type GormMonthlyActionRepository struct {
	db *gorm.DB
}

// NewGormMonthlyActionRepository creates a new GormMonthlyActionRepository
func NewGormMonthlyActionRepository(db *gorm.DB) *GormMonthlyActionRepository {
	return &GormMonthlyActionRepository{db: db}
}

// UpsertChatNotification writes the CHAT_MENSAJE action for the month.
// On conflict the description and creator are replaced and the read state
// is reset, so the month shows as unread again after fresh chat activity.
func (r *GormMonthlyActionRepository) UpsertChatNotification(ctx context.Context, convenioID int64, month valueobject.MonthStart, description, createdBy string) error {
	a, err := convenio.NewMonthlyAction(convenioID, month, convenio.ActionTypeChatMessage, description, createdBy)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: actionConflictColumns,
			DoUpdates: clause.Assignments(map[string]any{
				"description": a.Description,
				"created_by":  a.CreatedBy,
				"leido":       false,
				"leido_by":    "",
				"leido_at":    nil,
				"updated_at":  a.UpdatedAt,
			}),
		}).
		Create(a).Error
}

// UpsertOperational writes a FINALIZAR_CARGA or ENVIAR_LISTADO action.
// On conflict the description, metadata and creator are replaced; the read
// state of the existing row is kept as-is.
func (r *GormMonthlyActionRepository) UpsertOperational(ctx context.Context, a *convenio.MonthlyAction) error {
	if !convenio.IsOperational(a.Type) {
		return shared.NewDomainError("VALIDATION", "Tipo de acción no operativo: "+string(a.Type))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: actionConflictColumns,
			DoUpdates: clause.Assignments(map[string]any{
				"description": a.Description,
				"metadata":    a.Metadata,
				"created_by":  a.CreatedBy,
				"updated_at":  a.UpdatedAt,
			}),
		}).
		Create(a).Error
}

// Find returns the action row for the (convenio, month, type) triple
func (r *GormMonthlyActionRepository) Find(ctx context.Context, convenioID int64, month valueobject.MonthStart, actionType convenio.ActionType) (*convenio.MonthlyAction, error) {
	var a convenio.MonthlyAction
	if err := r.db.WithContext(ctx).
		Where("convenio_id = ? AND month_start = ? AND type = ?", convenioID, month.String(), actionType).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns the convenio's actions, optionally scoped to one month
func (r *GormMonthlyActionRepository) List(ctx context.Context, convenioID int64, month *valueobject.MonthStart) ([]convenio.MonthlyAction, error) {
	query := r.db.WithContext(ctx).Where("convenio_id = ?", convenioID)
	if month != nil && !month.IsZero() {
		query = query.Where("month_start = ?", month.String())
	}

	var actions []convenio.MonthlyAction
	if err := query.Order("month_start desc, type asc").Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// MarkRead stamps the action row as read by the given user
func (r *GormMonthlyActionRepository) MarkRead(ctx context.Context, convenioID int64, month valueobject.MonthStart, actionType convenio.ActionType, readBy string) error {
	a, err := r.Find(ctx, convenioID, month, actionType)
	if err != nil {
		return err
	}
	a.MarkRead(readBy)
	return r.db.WithContext(ctx).Save(a).Error
}

// CountUnread counts unread actions, optionally scoped to one month
func (r *GormMonthlyActionRepository) CountUnread(ctx context.Context, convenioID int64, month *valueobject.MonthStart) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&convenio.MonthlyAction{}).
		Where("convenio_id = ? AND leido = ?", convenioID, false)
	if month != nil && !month.IsZero() {
		query = query.Where("month_start = ?", month.String())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
