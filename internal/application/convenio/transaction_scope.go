package convenio

import (
	"context"

	"github.com/gymhub/backend/internal/domain/convenio"
)

// ChatRepositories provides access to the chat-related repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type ChatRepositories interface {
	Convenios() convenio.ConvenioRepository
	Threads() convenio.ThreadRepository
	Messages() convenio.MessageRepository
	Actions() convenio.MonthlyActionRepository
}

// TransactionScope runs a function with transactional repository access.
// If the function returns an error the transaction is rolled back; otherwise
// it is committed. Message send relies on this so a caller never observes a
// message row without the matching thread timestamp and action upsert.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos ChatRepositories) error) error
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	convenios convenio.ConvenioRepository
	threads   convenio.ThreadRepository
	messages  convenio.MessageRepository
	actions   convenio.MonthlyActionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	convenios convenio.ConvenioRepository,
	threads convenio.ThreadRepository,
	messages convenio.MessageRepository,
	actions convenio.MonthlyActionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		convenios: convenios,
		threads:   threads,
		messages:  messages,
		actions:   actions,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos ChatRepositories) error) error {
	return fn(s)
}

// Convenios returns the convenio repository
func (s *NoOpTransactionScope) Convenios() convenio.ConvenioRepository { return s.convenios }

// Threads returns the thread repository
func (s *NoOpTransactionScope) Threads() convenio.ThreadRepository { return s.threads }

// Messages returns the message repository
func (s *NoOpTransactionScope) Messages() convenio.MessageRepository { return s.messages }

// Actions returns the monthly action repository
func (s *NoOpTransactionScope) Actions() convenio.MonthlyActionRepository { return s.actions }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ ChatRepositories = (*NoOpTransactionScope)(nil)
