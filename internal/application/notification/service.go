package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gymhub/backend/internal/domain/notification"
	"github.com/gymhub/backend/internal/domain/shared"
)

// NovedadService publishes and curates dashboard announcements
type NovedadService struct {
	novedades notification.NovedadRepository
	logger    *zap.Logger
}

// NewNovedadService creates a novedad application service
func NewNovedadService(novedades notification.NovedadRepository, logger *zap.Logger) *NovedadService {
	return &NovedadService{novedades: novedades, logger: logger}
}

// Create publishes an announcement on behalf of publishedBy
func (s *NovedadService) Create(ctx context.Context, req CreateNovedadRequest, publishedBy string) (*NovedadResponse, error) {
	audience := notification.Audience(req.Audience)
	if req.Audience == "" {
		audience = notification.AudienceAll
	}
	novedad, err := notification.NewNovedad(req.Title, req.Body, publishedBy, audience)
	if err != nil {
		return nil, err
	}
	if req.Pinned {
		novedad.Pin(true)
	}
	if err := s.novedades.Save(ctx, novedad); err != nil {
		return nil, err
	}
	s.logger.Info("novedad published",
		zap.Int64("novedad_id", novedad.ID),
		zap.String("audience", string(novedad.Audience)))
	resp := ToNovedadResponse(novedad)
	return &resp, nil
}

// ListVisible returns the announcements currently inside their publication
// window for the given audience. Pinned entries come first.
func (s *NovedadService) ListVisible(ctx context.Context, audience string) ([]NovedadResponse, error) {
	aud := notification.Audience(audience)
	if audience == "" {
		aud = notification.AudienceAll
	}
	novedades, err := s.novedades.FindVisible(ctx, aud, time.Now())
	if err != nil {
		return nil, err
	}
	responses := make([]NovedadResponse, len(novedades))
	for i := range novedades {
		responses[i] = ToNovedadResponse(&novedades[i])
	}
	return responses, nil
}

// List returns all announcements, visible or not, for back-office curation
func (s *NovedadService) List(ctx context.Context, filter shared.Filter) (*NovedadListResponse, error) {
	novedades, total, err := s.novedades.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]NovedadResponse, len(novedades))
	for i := range novedades {
		responses[i] = ToNovedadResponse(&novedades[i])
	}
	return &NovedadListResponse{Novedades: responses, Total: total}, nil
}

// Expire closes the publication window of an announcement
func (s *NovedadService) Expire(ctx context.Context, id int64) (*NovedadResponse, error) {
	novedad, err := s.novedades.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := novedad.Expire(time.Now()); err != nil {
		return nil, err
	}
	if err := s.novedades.Save(ctx, novedad); err != nil {
		return nil, err
	}
	resp := ToNovedadResponse(novedad)
	return &resp, nil
}

// Pin toggles the pinned flag of an announcement
func (s *NovedadService) Pin(ctx context.Context, id int64, pinned bool) (*NovedadResponse, error) {
	novedad, err := s.novedades.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	novedad.Pin(pinned)
	if err := s.novedades.Save(ctx, novedad); err != nil {
		return nil, err
	}
	resp := ToNovedadResponse(novedad)
	return &resp, nil
}

// Delete removes an announcement
func (s *NovedadService) Delete(ctx context.Context, id int64) error {
	if _, err := s.novedades.FindByID(ctx, id); err != nil {
		return err
	}
	return s.novedades.Delete(ctx, id)
}

// NotificationService manages the per-user notification bell
type NotificationService struct {
	notifications notification.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a notification application service
func NewNotificationService(notifications notification.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// Create addresses a notification to a single user
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*NotificationResponse, error) {
	notif, err := notification.NewNotification(req.UserID, req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.Save(ctx, notif); err != nil {
		return nil, err
	}
	resp := ToNotificationResponse(notif)
	return &resp, nil
}

// ListByUser returns a user's notifications, newest first, with the unread
// counter for the bell badge.
func (s *NotificationService) ListByUser(ctx context.Context, userID int64, onlyUnread bool, filter shared.Filter) (*NotificationListResponse, error) {
	notifications, total, err := s.notifications.FindByUser(ctx, userID, onlyUnread, filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return &NotificationListResponse{Notificaciones: responses, Total: total, NoLeidas: unread}, nil
}

// MarkRead flags a notification as read. Only the addressee can read it.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) (*NotificationResponse, error) {
	notif, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "La notificación pertenece a otro usuario")
	}
	notif.MarkRead()
	if err := s.notifications.Save(ctx, notif); err != nil {
		return nil, err
	}
	resp := ToNotificationResponse(notif)
	return &resp, nil
}

// CountUnread returns the bell badge counter for a user
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}
