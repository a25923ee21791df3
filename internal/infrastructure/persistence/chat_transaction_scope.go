package persistence

import (
	"context"

	"gorm.io/gorm"

	appconvenio "github.com/gymhub/backend/internal/application/convenio"
	"github.com/gymhub/backend/internal/domain/convenio"
)

// GormChatTransactionScope implements TransactionScope using GORM
// transactions. Message send uses it so the message row, the thread
// timestamp and the monthly action land atomically.
type GormChatTransactionScope struct {
	db *gorm.DB
}

// NewGormChatTransactionScope creates a new GormChatTransactionScope
func NewGormChatTransactionScope(db *gorm.DB) *GormChatTransactionScope {
	return &GormChatTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error the transaction is rolled back.
func (s *GormChatTransactionScope) Execute(ctx context.Context, fn func(repos appconvenio.ChatRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormChatRepositories{tx: tx})
	})
}

// gormChatRepositories provides repository access scoped to one transaction
type gormChatRepositories struct {
	tx *gorm.DB
}

// Convenios returns the convenio repository scoped to the current transaction
func (r *gormChatRepositories) Convenios() convenio.ConvenioRepository {
	return NewGormConvenioRepository(r.tx)
}

// Threads returns the thread repository scoped to the current transaction
func (r *gormChatRepositories) Threads() convenio.ThreadRepository {
	return NewGormThreadRepository(r.tx)
}

// Messages returns the message repository scoped to the current transaction
func (r *gormChatRepositories) Messages() convenio.MessageRepository {
	return NewGormMessageRepository(r.tx)
}

// Actions returns the monthly action repository scoped to the current transaction
func (r *gormChatRepositories) Actions() convenio.MonthlyActionRepository {
	return NewGormMonthlyActionRepository(r.tx)
}

var _ appconvenio.TransactionScope = (*GormChatTransactionScope)(nil)
var _ appconvenio.ChatRepositories = (*gormChatRepositories)(nil)
