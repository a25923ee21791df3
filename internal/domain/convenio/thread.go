package convenio

import (
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
)

// ThreadStatus represents the lifecycle status of a chat thread
type ThreadStatus string

const (
	ThreadStatusOpen   ThreadStatus = "OPEN"
	ThreadStatusClosed ThreadStatus = "CLOSED"
)

// Thread is the single persistent chat channel between the gym and one
// convenio. There is at most one thread per convenio; it is created lazily
// on first chat access.
type Thread struct {
	shared.BaseAggregateRoot
	ConvenioID    int64        `gorm:"not null;uniqueIndex"`
	ContactName   string       `gorm:"type:varchar(100)"` // partner contact display name, set lazily
	Status        ThreadStatus `gorm:"type:varchar(20);not null;default:'OPEN'"`
	LastMessageAt *time.Time
}

// TableName returns the table name for GORM
func (Thread) TableName() string {
	return "convenio_chat_threads"
}

// NewThread creates a new open thread for a convenio
func NewThread(convenioID int64) (*Thread, error) {
	if convenioID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "convenio_id inválido")
	}
	return &Thread{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ConvenioID:        convenioID,
		Status:            ThreadStatusOpen,
	}, nil
}

// NeedsContactName reports whether the partner display name is still unset
func (t *Thread) NeedsContactName() bool {
	return strings.TrimSpace(t.ContactName) == ""
}

// SetContactName sets the partner contact display name
func (t *Thread) SetContactName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION", "El nombre no puede estar vacío")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION", "El nombre no puede superar 100 caracteres")
	}
	t.ContactName = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// TouchLastMessage records that a message was appended at ts
func (t *Thread) TouchLastMessage(ts time.Time) {
	t.LastMessageAt = &ts
	t.UpdatedAt = ts
	t.IncrementVersion()
}

// Close closes the thread
func (t *Thread) Close() error {
	if t.Status == ThreadStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "El hilo ya está cerrado")
	}
	t.Status = ThreadStatusClosed
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Reopen reopens a closed thread
func (t *Thread) Reopen() error {
	if t.Status == ThreadStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "El hilo ya está abierto")
	}
	t.Status = ThreadStatusOpen
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
