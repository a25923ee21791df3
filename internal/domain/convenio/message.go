package convenio

import (
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// SenderRole identifies which side of the conversation authored a message
type SenderRole string

const (
	SenderRoleConvenio SenderRole = "CONVENIO" // the external partner
	SenderRoleGimnasio SenderRole = "GIMNASIO" // an internal gym user
)

// Message is a single chat message within a thread. Messages are tagged with
// the month bucket they belong to and are never hard-deleted: deletion stamps
// deleted_at and keeps the row.
type Message struct {
	shared.BaseAggregateRoot
	ThreadID     int64                  `gorm:"not null;index"`
	MonthStart   valueobject.MonthStart `gorm:"type:varchar(19);not null;index"`
	SenderRole   SenderRole             `gorm:"type:varchar(20);not null"`
	SenderName   string                 `gorm:"type:varchar(100);not null"` // display-name snapshot, not a live join
	Body         string                 `gorm:"type:text;not null"`
	EditedAt     *time.Time
	DeletedAt    *time.Time `gorm:"index"`
	DeletedBy    string     `gorm:"type:varchar(100)"`
	DeleteReason string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "convenio_chat_messages"
}

// NewMessage creates a new message. The body is trimmed and must be
// non-empty; the sender name snapshot is required for both roles.
func NewMessage(threadID int64, month valueobject.MonthStart, role SenderRole, senderName, body string) (*Message, error) {
	if threadID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "thread_id inválido")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("VALIDATION", "Mes inválido: se espera formato YYYY-MM-01 00:00:00")
	}
	if err := validateSenderRole(role); err != nil {
		return nil, err
	}
	senderName = strings.TrimSpace(senderName)
	if senderName == "" {
		return nil, shared.NewDomainError("VALIDATION", "No se pudo resolver el nombre del remitente")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("VALIDATION", "El mensaje no puede estar vacío")
	}

	return &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ThreadID:          threadID,
		MonthStart:        month,
		SenderRole:        role,
		SenderName:        senderName,
		Body:              body,
	}, nil
}

// IsDeleted reports whether the message has been soft-deleted
func (m *Message) IsDeleted() bool {
	return m.DeletedAt != nil
}

// Edit replaces the message body and stamps the edit timestamp.
// Soft-deleted messages cannot be edited.
func (m *Message) Edit(body string) error {
	if m.IsDeleted() {
		return shared.NewDomainError("VALIDATION", "No se puede editar un mensaje eliminado")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return shared.NewDomainError("VALIDATION", "El mensaje no puede estar vacío")
	}
	now := time.Now()
	m.Body = body
	m.EditedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

// SoftDelete stamps the deletion. Idempotent: a repeated delete keeps the
// original deleted_at and deleter.
func (m *Message) SoftDelete(deletedBy, reason string) {
	if m.IsDeleted() {
		return
	}
	now := time.Now()
	m.DeletedAt = &now
	m.DeletedBy = strings.TrimSpace(deletedBy)
	m.DeleteReason = strings.TrimSpace(reason)
	m.UpdatedAt = now
	m.IncrementVersion()
}

// Preview returns the message body truncated for dashboard display,
// ellipsized at max runes.
func (m *Message) Preview(max int) string {
	runes := []rune(m.Body)
	if len(runes) <= max {
		return m.Body
	}
	return string(runes[:max]) + "…"
}

func validateSenderRole(role SenderRole) error {
	switch role {
	case SenderRoleConvenio, SenderRoleGimnasio:
		return nil
	default:
		return shared.NewDomainError("VALIDATION", "sender_tipo debe ser CONVENIO o GIMNASIO")
	}
}

// MessageRead records that one gym user has seen one message. The
// (message, reader) pair is unique; duplicate read marks are no-ops.
type MessageRead struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	MessageID    int64 `gorm:"not null;uniqueIndex:idx_message_reader,priority:1"`
	ReaderUserID int64 `gorm:"not null;uniqueIndex:idx_message_reader,priority:2"`
	ReadAt       time.Time
}

// TableName returns the table name for GORM
func (MessageRead) TableName() string {
	return "convenio_chat_message_reads"
}

// NewMessageRead creates a read receipt for (message, reader)
func NewMessageRead(messageID, readerUserID int64) (*MessageRead, error) {
	if messageID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "message_id inválido")
	}
	if readerUserID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "No se pudo resolver el usuario lector")
	}
	return &MessageRead{
		MessageID:    messageID,
		ReaderUserID: readerUserID,
		ReadAt:       time.Now(),
	}, nil
}
