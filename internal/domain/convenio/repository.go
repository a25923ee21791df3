package convenio

import (
	"context"

	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// ConvenioRepository provides access to convenio aggregates
type ConvenioRepository interface {
	FindByID(ctx context.Context, id int64) (*Convenio, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Convenio, int64, error)
	Save(ctx context.Context, c *Convenio) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// ThreadRepository provides access to chat threads
type ThreadRepository interface {
	// GetOrCreate performs an idempotent insert keyed by convenio id
	// (insert-or-no-op on conflict) followed by a fetch, so concurrent
	// first-contact requests resolve to the same thread row.
	GetOrCreate(ctx context.Context, convenioID int64) (*Thread, error)
	FindByID(ctx context.Context, id int64) (*Thread, error)
	FindByConvenioID(ctx context.Context, convenioID int64) (*Thread, error)
	Save(ctx context.Context, t *Thread) error
}

// ListMessagesQuery filters a message listing
type ListMessagesQuery struct {
	ThreadID       int64
	Month          *valueobject.MonthStart
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// MessageRepository provides access to messages and read receipts
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id int64) (*Message, error)
	Save(ctx context.Context, m *Message) error
	// List returns one page of messages in creation order plus the total
	// count for the query.
	List(ctx context.Context, q ListMessagesQuery) ([]Message, int64, error)
	// MarkRead inserts a read receipt; a duplicate (message, reader)
	// pair is a no-op.
	MarkRead(ctx context.Context, r *MessageRead) error
	// ReadMessageIDs returns the subset of ids the reader has marked read
	ReadMessageIDs(ctx context.Context, readerUserID int64, messageIDs []int64) (map[int64]bool, error)
	// UnreadCount counts CONVENIO-authored, non-deleted messages in the
	// thread that the reader has not marked read, optionally scoped to
	// one month.
	UnreadCount(ctx context.Context, threadID, readerUserID int64, month *valueobject.MonthStart) (int64, error)
}

// MonthlyActionRepository provides upsert access to monthly action rows.
// The (convenio, month, type) triple is the uniqueness contract for every
// write.
type MonthlyActionRepository interface {
	// UpsertChatNotification writes the CHAT_MENSAJE action for
	// (convenio, month): description/creator are overwritten and the read
	// state is reset to unread, clearing any prior reader and timestamp.
	UpsertChatNotification(ctx context.Context, convenioID int64, month valueobject.MonthStart, description, createdBy string) error
	// UpsertOperational writes a FINALIZAR_CARGA or ENVIAR_LISTADO action:
	// description/metadata/creator are overwritten and updated_at
	// refreshed, but the read state is preserved.
	UpsertOperational(ctx context.Context, a *MonthlyAction) error
	Find(ctx context.Context, convenioID int64, month valueobject.MonthStart, actionType ActionType) (*MonthlyAction, error)
	List(ctx context.Context, convenioID int64, month *valueobject.MonthStart) ([]MonthlyAction, error)
	MarkRead(ctx context.Context, convenioID int64, month valueobject.MonthStart, actionType ActionType, readBy string) error
	CountUnread(ctx context.Context, convenioID int64, month *valueobject.MonthStart) (int64, error)
}
