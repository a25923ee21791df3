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

const (
	defaultMessagePageSize = 50
	maxMessagePageSize     = 200
)

// GormThreadRepository implements convenio.ThreadRepository using GORM
type GormThreadRepository struct {
	db *gorm.DB
}

// NewGormThreadRepository creates a new GormThreadRepository
func NewGormThreadRepository(db *gorm.DB) *GormThreadRepository {
	return &GormThreadRepository{db: db}
}

// GetOrCreate returns the convenio's thread, creating it on first access.
// The insert is a no-op on conflict so concurrent callers converge on the
// same row.
func (r *GormThreadRepository) GetOrCreate(ctx context.Context, convenioID int64) (*convenio.Thread, error) {
	t, err := convenio.NewThread(convenioID)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "convenio_id"}},
			DoNothing: true,
		}).
		Create(t).Error; err != nil {
		return nil, err
	}

	return r.FindByConvenioID(ctx, convenioID)
}

// FindByID finds a thread by its ID
func (r *GormThreadRepository) FindByID(ctx context.Context, id int64) (*convenio.Thread, error) {
	var t convenio.Thread
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByConvenioID finds the thread belonging to a convenio
func (r *GormThreadRepository) FindByConvenioID(ctx context.Context, convenioID int64) (*convenio.Thread, error) {
	var t convenio.Thread
	if err := r.db.WithContext(ctx).First(&t, "convenio_id = ?", convenioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save persists a thread
func (r *GormThreadRepository) Save(ctx context.Context, t *convenio.Thread) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// GormMessageRepository implements convenio.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create inserts a new message
func (r *GormMessageRepository) Create(ctx context.Context, m *convenio.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID finds a message by its ID, deleted ones included
func (r *GormMessageRepository) FindByID(ctx context.Context, id int64) (*convenio.Message, error) {
	var m convenio.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Save persists message mutations (edit, soft delete)
func (r *GormMessageRepository) Save(ctx context.Context, m *convenio.Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// List returns a page of messages in creation order plus the total count.
// The limit is capped; zero means the default page size.
func (r *GormMessageRepository) List(ctx context.Context, q convenio.ListMessagesQuery) ([]convenio.Message, int64, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	if limit > maxMessagePageSize {
		limit = maxMessagePageSize
	}

	query := r.db.WithContext(ctx).Model(&convenio.Message{}).Where("thread_id = ?", q.ThreadID)
	if q.Month != nil && !q.Month.IsZero() {
		query = query.Where("month_start = ?", q.Month.String())
	}
	if !q.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []convenio.Message
	if err := query.Order("created_at asc, id asc").Limit(limit).Offset(q.Offset).Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// MarkRead inserts a read receipt; duplicates are silently ignored
func (r *GormMessageRepository) MarkRead(ctx context.Context, read *convenio.MessageRead) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "reader_user_id"}},
			DoNothing: true,
		}).
		Create(read).Error
}

// ReadMessageIDs returns which of the given messages the reader marked read
func (r *GormMessageRepository) ReadMessageIDs(ctx context.Context, readerUserID int64, messageIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return result, nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&convenio.MessageRead{}).
		Where("reader_user_id = ? AND message_id IN ?", readerUserID, messageIDs).
		Pluck("message_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// UnreadCount counts partner-authored live messages the reader has not seen
func (r *GormMessageRepository) UnreadCount(ctx context.Context, threadID, readerUserID int64, month *valueobject.MonthStart) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&convenio.Message{}).
		Where("thread_id = ?", threadID).
		Where("sender_role = ?", convenio.SenderRoleConvenio).
		Where("deleted_at IS NULL").
		Where("NOT EXISTS (SELECT 1 FROM convenio_chat_message_reads r WHERE r.message_id = convenio_chat_messages.id AND r.reader_user_id = ?)", readerUserID)
	if month != nil && !month.IsZero() {
		query = query.Where("month_start = ?", month.String())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
