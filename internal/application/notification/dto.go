package notification

import (
	"time"

	"github.com/gymhub/backend/internal/domain/notification"
)

// CreateNovedadRequest publishes a dashboard announcement
type CreateNovedadRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,oneof=TODOS STAFF CONVENIOS"`
	Pinned   bool   `json:"pinned"`
}

// NovedadResponse is the wire representation of an announcement
type NovedadResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Audience    string     `json:"audience"`
	PublishedBy string     `json:"published_by"`
	PublishFrom time.Time  `json:"publish_from"`
	PublishTo   *time.Time `json:"publish_to,omitempty"`
	Pinned      bool       `json:"pinned"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToNovedadResponse converts a domain novedad to its response DTO
func ToNovedadResponse(n *notification.Novedad) NovedadResponse {
	return NovedadResponse{
		ID:          n.ID,
		Title:       n.Title,
		Body:        n.Body,
		Audience:    string(n.Audience),
		PublishedBy: n.PublishedBy,
		PublishFrom: n.PublishFrom,
		PublishTo:   n.PublishTo,
		Pinned:      n.Pinned,
		CreatedAt:   n.CreatedAt,
	}
}

// NovedadListResponse is a paginated announcement listing
type NovedadListResponse struct {
	Novedades []NovedadResponse `json:"novedades"`
	Total     int64             `json:"total"`
}

// CreateNotificationRequest addresses a message to one user
type CreateNotificationRequest struct {
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	Title  string `json:"title" binding:"required,max=200"`
	Body   string `json:"body"`
}

// NotificationResponse is the wire representation of a user notification
type NotificationResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Leido     bool       `json:"leido"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToNotificationResponse converts a domain notification to its response DTO
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		Leido:     n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationListResponse is a paginated notification listing
type NotificationListResponse struct {
	Notificaciones []NotificationResponse `json:"notificaciones"`
	Total          int64                  `json:"total"`
	NoLeidas       int64                  `json:"no_leidas"`
}
