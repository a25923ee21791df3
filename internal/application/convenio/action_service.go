package convenio

import (
	"context"

	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// ActionService handles the general monthly-action board: operational
// upserts, listing, read marking and the pending count.
type ActionService struct {
	actions   convenio.MonthlyActionRepository
	convenios convenio.ConvenioRepository
	resolver  *IdentityResolver
	cache     UnreadCache
}

// NewActionService creates a new ActionService. cache may be nil.
func NewActionService(
	actions convenio.MonthlyActionRepository,
	convenios convenio.ConvenioRepository,
	resolver *IdentityResolver,
	cache UnreadCache,
) *ActionService {
	return &ActionService{
		actions:   actions,
		convenios: convenios,
		resolver:  resolver,
		cache:     cache,
	}
}

// Upsert writes an operational action for (convenio, month, type).
// Description, metadata and creator are overwritten on conflict; the read
// state is preserved. CHAT_MENSAJE rows cannot be written through here.
func (s *ActionService) Upsert(ctx context.Context, req UpsertActionRequest, auth *AuthContext) (*ActionResponse, error) {
	month, err := parseMonth(req.MonthStart)
	if err != nil {
		return nil, err
	}
	actionType := convenio.ActionType(req.Tipo)
	if !convenio.IsOperational(actionType) {
		return nil, shared.NewDomainError("VALIDATION", "tipo debe ser FINALIZAR_CARGA o ENVIAR_LISTADO")
	}

	exists, err := s.convenios.Exists(ctx, req.ConvenioID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Convenio no encontrado")
	}

	createdBy := req.Nombre
	if ident, err := s.resolver.Resolve(ctx, auth, req.UserID, req.Nombre); err == nil {
		createdBy = ident.Name
	}

	action, err := convenio.NewMonthlyAction(req.ConvenioID, month, actionType, req.Descripcion, createdBy)
	if err != nil {
		return nil, err
	}
	if req.Metadata != "" {
		action.Metadata = req.Metadata
	}
	if err := s.actions.UpsertOperational(ctx, action); err != nil {
		return nil, err
	}
	s.invalidateUnread(ctx, req.ConvenioID)

	stored, err := s.actions.Find(ctx, req.ConvenioID, month, actionType)
	if err != nil {
		return nil, err
	}
	resp := ToActionResponse(stored)
	return &resp, nil
}

// List returns a convenio's monthly actions, optionally scoped to one month
func (s *ActionService) List(ctx context.Context, convenioID int64, monthStart string) ([]ActionResponse, error) {
	if convenioID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "convenio_id inválido")
	}
	var month *valueobject.MonthStart
	if monthStart != "" {
		m, err := parseMonth(monthStart)
		if err != nil {
			return nil, err
		}
		month = &m
	}

	actions, err := s.actions.List(ctx, convenioID, month)
	if err != nil {
		return nil, err
	}
	responses := make([]ActionResponse, len(actions))
	for i := range actions {
		responses[i] = ToActionResponse(&actions[i])
	}
	return responses, nil
}

// MarkRead marks one action row as read, stamping who and when
func (s *ActionService) MarkRead(ctx context.Context, req MarkActionReadRequest, auth *AuthContext) error {
	month, err := parseMonth(req.MonthStart)
	if err != nil {
		return err
	}
	actionType := convenio.ActionType(req.Tipo)
	if actionType == "" {
		actionType = convenio.ActionTypeChatMessage
	}

	readBy := req.Nombre
	if ident, err := s.resolver.Resolve(ctx, auth, req.UserID, req.Nombre); err == nil {
		readBy = ident.Name
	}

	if err := s.actions.MarkRead(ctx, req.ConvenioID, month, actionType, readBy); err != nil {
		return err
	}
	s.invalidateUnread(ctx, req.ConvenioID)
	return nil
}

// CountPending reports how many unread actions a convenio has. The
// all-months count is served through the cache; month-scoped counts go
// straight to the database.
func (s *ActionService) CountPending(ctx context.Context, convenioID int64, monthStart string) (*PendingCountResponse, error) {
	if convenioID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "convenio_id inválido")
	}

	if monthStart != "" {
		month, err := parseMonth(monthStart)
		if err != nil {
			return nil, err
		}
		count, err := s.actions.CountUnread(ctx, convenioID, &month)
		if err != nil {
			return nil, err
		}
		return &PendingCountResponse{ConvenioID: convenioID, MonthStart: month.String(), Count: count}, nil
	}

	if s.cache != nil {
		if count, found, err := s.cache.Get(ctx, convenioID); err == nil && found {
			return &PendingCountResponse{ConvenioID: convenioID, Count: count}, nil
		}
	}

	count, err := s.actions.CountUnread(ctx, convenioID, nil)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, convenioID, count)
	}
	return &PendingCountResponse{ConvenioID: convenioID, Count: count}, nil
}

func (s *ActionService) invalidateUnread(ctx context.Context, convenioID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, convenioID)
}
