package notification

import (
	"context"
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// Notification is a message addressed to a single gym user, shown in the
// header bell until marked read.
type Notification struct {
	shared.BaseAggregateRoot
	UserID int64  `gorm:"not null;index"`
	Title  string `gorm:"type:varchar(200);not null"`
	Body   string `gorm:"type:text"`
	Read   bool   `gorm:"not null;default:false"`
	ReadAt *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for a user
func NewNotification(userID int64, title, body string) (*Notification, error) {
	if userID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "El usuario destinatario es inválido")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("VALIDATION", "El título no puede estar vacío")
	}
	return &Notification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Title:             title,
		Body:              strings.TrimSpace(body),
	}, nil
}

// MarkRead stamps the read flag. Repeated calls keep the first timestamp.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
}

// NotificationRepository provides access to per-user notifications
type NotificationRepository interface {
	FindByID(ctx context.Context, id int64) (*Notification, error)
	FindByUser(ctx context.Context, userID int64, onlyUnread bool, filter shared.Filter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id int64) error
}
