package convenio

import (
	"context"
	"errors"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// chatPreviewMaxRunes is where the message preview stored on the dashboard
// action row is ellipsized.
const chatPreviewMaxRunes = 140

// UnreadCache caches per-convenio pending action counts. Implementations
// treat misses as (0, false, nil).
type UnreadCache interface {
	Get(ctx context.Context, convenioID int64) (count int64, found bool, err error)
	Set(ctx context.Context, convenioID, count int64) error
	Invalidate(ctx context.Context, convenioID int64) error
}

// ChatService handles the convenio chat: thread resolution, message send,
// listing with unread computation, read marking, edit and soft delete.
type ChatService struct {
	convenios convenio.ConvenioRepository
	threads   convenio.ThreadRepository
	messages  convenio.MessageRepository
	actions   convenio.MonthlyActionRepository
	scope     TransactionScope
	resolver  *IdentityResolver
	cache     UnreadCache
}

// NewChatService creates a new ChatService. cache may be nil.
func NewChatService(
	convenios convenio.ConvenioRepository,
	threads convenio.ThreadRepository,
	messages convenio.MessageRepository,
	actions convenio.MonthlyActionRepository,
	scope TransactionScope,
	resolver *IdentityResolver,
	cache UnreadCache,
) *ChatService {
	return &ChatService{
		convenios: convenios,
		threads:   threads,
		messages:  messages,
		actions:   actions,
		scope:     scope,
		resolver:  resolver,
		cache:     cache,
	}
}

// GetOrCreateThread resolves the single thread for a convenio, creating it
// on first access. Safe under concurrent first-contact requests.
func (s *ChatService) GetOrCreateThread(ctx context.Context, convenioID int64) (*ThreadResponse, error) {
	if convenioID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "convenio_id inválido")
	}
	exists, err := s.convenios.Exists(ctx, convenioID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Convenio no encontrado")
	}

	thread, err := s.threads.GetOrCreate(ctx, convenioID)
	if err != nil {
		return nil, err
	}
	resp := ToThreadResponse(thread)
	return &resp, nil
}

// SetThreadContactName sets the partner contact display name on a thread
func (s *ChatService) SetThreadContactName(ctx context.Context, threadID int64, req SetThreadNameRequest) (*ThreadResponse, error) {
	thread, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if err := thread.SetContactName(req.Nombre); err != nil {
		return nil, err
	}
	if err := s.threads.Save(ctx, thread); err != nil {
		return nil, err
	}
	resp := ToThreadResponse(thread)
	return &resp, nil
}

// SendMessage appends a message to a thread. The thread is resolved by
// explicit id or by convenio (created lazily); for CONVENIO senders the
// month's CHAT_MENSAJE action is upserted and reset to unread. Everything
// runs inside one transaction.
func (s *ChatService) SendMessage(ctx context.Context, req SendMessageRequest, auth *AuthContext) (*MessageResponse, error) {
	month, err := parseMonth(req.MonthStart)
	if err != nil {
		return nil, err
	}
	role := convenio.SenderRole(req.SenderTipo)

	var msg *convenio.Message
	var badgeConvenioID int64
	err = s.scope.Execute(ctx, func(repos ChatRepositories) error {
		thread, err := s.resolveThread(ctx, repos, req.ThreadID, req.ConvenioID)
		if err != nil {
			return err
		}

		senderName, err := s.resolveSender(ctx, repos, thread, role, req, auth)
		if err != nil {
			return err
		}

		msg, err = convenio.NewMessage(thread.ID, month, role, senderName, req.Mensaje)
		if err != nil {
			return err
		}
		if err := repos.Messages().Create(ctx, msg); err != nil {
			return err
		}

		thread.TouchLastMessage(msg.CreatedAt)
		if err := repos.Threads().Save(ctx, thread); err != nil {
			return err
		}

		if role == convenio.SenderRoleConvenio {
			preview := msg.Preview(chatPreviewMaxRunes)
			if err := repos.Actions().UpsertChatNotification(ctx, thread.ConvenioID, month, preview, senderName); err != nil {
				return err
			}
			badgeConvenioID = thread.ConvenioID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Invalidation must happen after commit; inside the transaction a
	// concurrent count can re-fill the cache with the pre-commit value.
	if badgeConvenioID > 0 {
		s.invalidateUnread(ctx, badgeConvenioID)
	}

	resp := ToMessageResponse(msg, false)
	return &resp, nil
}

// resolveThread fetches the thread by explicit id, or resolves it through the
// convenio (creating it on first contact).
func (s *ChatService) resolveThread(ctx context.Context, repos ChatRepositories, threadID, convenioID int64) (*convenio.Thread, error) {
	if threadID > 0 {
		thread, err := repos.Threads().FindByID(ctx, threadID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Thread no encontrado")
			}
			return nil, err
		}
		return thread, nil
	}
	if convenioID > 0 {
		exists, err := repos.Convenios().Exists(ctx, convenioID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Convenio no encontrado")
		}
		return repos.Threads().GetOrCreate(ctx, convenioID)
	}
	return nil, shared.NewDomainError("VALIDATION", "Se requiere thread_id o convenio_id")
}

// resolveSender returns the sender display name for the message snapshot.
// GIMNASIO senders resolve through the identity priority rules; CONVENIO
// senders use the stored thread contact name, falling back to the body name
// and backfilling the thread when it had none.
func (s *ChatService) resolveSender(ctx context.Context, repos ChatRepositories, thread *convenio.Thread, role convenio.SenderRole, req SendMessageRequest, auth *AuthContext) (string, error) {
	if role == convenio.SenderRoleGimnasio {
		ident, err := s.resolver.Resolve(ctx, auth, req.UserID, req.Nombre)
		if err != nil {
			return "", err
		}
		return ident.Name, nil
	}

	if thread.ContactName != "" {
		return thread.ContactName, nil
	}
	if req.Nombre != "" {
		if err := thread.SetContactName(req.Nombre); err != nil {
			return "", err
		}
		if err := repos.Threads().Save(ctx, thread); err != nil {
			return "", err
		}
		return thread.ContactName, nil
	}
	return "", shared.NewDomainError("VALIDATION", "No se pudo resolver el nombre del remitente")
}

// ListMessages returns one page of a thread's messages in creation order.
// When a viewer id is supplied each message carries its per-viewer read flag
// and the response includes the viewer's unread count.
func (s *ChatService) ListMessages(ctx context.Context, req ListMessagesRequest) (*MessageListResponse, error) {
	if req.ThreadID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "thread_id inválido")
	}
	if _, err := s.threads.FindByID(ctx, req.ThreadID); err != nil {
		return nil, err
	}

	query := convenio.ListMessagesQuery{
		ThreadID:       req.ThreadID,
		IncludeDeleted: req.IncludeDeleted,
		Limit:          req.Limit,
		Offset:         req.Offset,
	}
	var month *valueobject.MonthStart
	if req.MonthStart != "" {
		m, err := parseMonth(req.MonthStart)
		if err != nil {
			return nil, err
		}
		month = &m
		query.Month = &m
	}

	messages, total, err := s.messages.List(ctx, query)
	if err != nil {
		return nil, err
	}

	readByViewer := map[int64]bool{}
	var unread int64
	if req.ViewerUserID > 0 {
		ids := make([]int64, len(messages))
		for i := range messages {
			ids[i] = messages[i].ID
		}
		readByViewer, err = s.messages.ReadMessageIDs(ctx, req.ViewerUserID, ids)
		if err != nil {
			return nil, err
		}
		unread, err = s.messages.UnreadCount(ctx, req.ThreadID, req.ViewerUserID, month)
		if err != nil {
			return nil, err
		}
	}

	resp := &MessageListResponse{
		Mensajes: make([]MessageResponse, len(messages)),
		Total:    total,
		NoLeidos: unread,
	}
	for i := range messages {
		resp.Mensajes[i] = ToMessageResponse(&messages[i], readByViewer[messages[i].ID])
	}
	return resp, nil
}

// MarkMessageRead records that a gym user has seen a message. Duplicate
// marks are no-ops.
func (s *ChatService) MarkMessageRead(ctx context.Context, messageID int64, req MarkMessageReadRequest, auth *AuthContext) error {
	ident, err := s.resolver.Resolve(ctx, auth, req.UserID, "")
	if err != nil {
		return shared.NewDomainError("VALIDATION", "No se pudo resolver el usuario lector")
	}
	if _, err := s.messages.FindByID(ctx, messageID); err != nil {
		return err
	}
	read, err := convenio.NewMessageRead(messageID, ident.ID)
	if err != nil {
		return err
	}
	return s.messages.MarkRead(ctx, read)
}

// EditMessage replaces a message body. Soft-deleted messages are rejected.
func (s *ChatService) EditMessage(ctx context.Context, messageID int64, req EditMessageRequest) (*MessageResponse, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := msg.Edit(req.Mensaje); err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}
	resp := ToMessageResponse(msg, false)
	return &resp, nil
}

// DeleteMessage soft-deletes a message, recording the deleter and an
// optional reason. Repeating the call is a no-op that returns the message
// as it stands.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID int64, req DeleteMessageRequest, auth *AuthContext) (*MessageResponse, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !msg.IsDeleted() {
		deleter := req.Nombre
		if ident, err := s.resolver.Resolve(ctx, auth, req.UserID, req.Nombre); err == nil {
			deleter = ident.Name
		}
		msg.SoftDelete(deleter, req.Motivo)
		if err := s.messages.Save(ctx, msg); err != nil {
			return nil, err
		}
	}
	resp := ToMessageResponse(msg, false)
	return &resp, nil
}

// MarkChatActionRead marks the month's CHAT_MENSAJE action row as read,
// stamping who and when.
func (s *ChatService) MarkChatActionRead(ctx context.Context, req MarkActionReadRequest, auth *AuthContext) error {
	month, err := parseMonth(req.MonthStart)
	if err != nil {
		return err
	}
	readBy := req.Nombre
	if ident, err := s.resolver.Resolve(ctx, auth, req.UserID, req.Nombre); err == nil {
		readBy = ident.Name
	}
	if err := s.actions.MarkRead(ctx, req.ConvenioID, month, convenio.ActionTypeChatMessage, readBy); err != nil {
		return err
	}
	s.invalidateUnread(ctx, req.ConvenioID)
	return nil
}

func (s *ChatService) invalidateUnread(ctx context.Context, convenioID int64) {
	if s.cache == nil {
		return
	}
	// Best effort; the count endpoint falls back to the database on a miss.
	_ = s.cache.Invalidate(ctx, convenioID)
}

// parseMonth validates the strict month-bucket literal
func parseMonth(s string) (valueobject.MonthStart, error) {
	month, err := valueobject.ParseMonthStart(s)
	if err != nil {
		return valueobject.MonthStart{}, shared.NewDomainError("VALIDATION", "Mes inválido: se espera formato YYYY-MM-01 00:00:00")
	}
	return month, nil
}
