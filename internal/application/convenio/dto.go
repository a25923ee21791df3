package convenio

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymhub/backend/internal/domain/convenio"
)

// =============================================================================
// Convenio DTOs
// =============================================================================

// CreateConvenioRequest represents a request to create a convenio
type CreateConvenioRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	CUIT         string           `json:"cuit" binding:"max=20"`
	ContactName  string           `json:"contact_name" binding:"max=100"`
	ContactEmail string           `json:"contact_email" binding:"omitempty,email,max=200"`
	ContactPhone string           `json:"contact_phone" binding:"max=50"`
	MemberFee    *decimal.Decimal `json:"member_fee"`
	Notes        string           `json:"notes"`
}

// UpdateConvenioRequest represents a request to update a convenio
type UpdateConvenioRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName  *string          `json:"contact_name" binding:"omitempty,max=100"`
	ContactEmail *string          `json:"contact_email" binding:"omitempty,email,max=200"`
	ContactPhone *string          `json:"contact_phone" binding:"omitempty,max=50"`
	MemberFee    *decimal.Decimal `json:"member_fee"`
	Notes        *string          `json:"notes"`
}

// ConvenioResponse represents a convenio in API responses
type ConvenioResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CUIT         string          `json:"cuit"`
	ContactName  string          `json:"contact_name"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone"`
	Status       string          `json:"status"`
	MemberFee    decimal.Decimal `json:"member_fee"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToConvenioResponse maps a convenio aggregate to its response shape
func ToConvenioResponse(c *convenio.Convenio) ConvenioResponse {
	return ConvenioResponse{
		ID:           c.ID,
		Name:         c.Name,
		CUIT:         c.CUIT,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Status:       string(c.Status),
		MemberFee:    c.MemberFee,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Version:      c.Version,
	}
}

// InvoiceResponse is a computed billing quote for one convenio and month
type InvoiceResponse struct {
	ConvenioID int64           `json:"convenio_id"`
	Period     string          `json:"period"`
	Members    int             `json:"members"`
	MemberFee  decimal.Decimal `json:"member_fee"`
	Total      decimal.Decimal `json:"total"`
}

// =============================================================================
// Chat DTOs
// =============================================================================

// ThreadResponse represents a chat thread, plus the derived flag telling the
// frontend it still has to ask for the partner contact's display name.
type ThreadResponse struct {
	ID            int64      `json:"id"`
	ConvenioID    int64      `json:"convenio_id"`
	ContactName   string     `json:"nombre_contacto"`
	Status        string     `json:"status"`
	LastMessageAt *time.Time `json:"ultimo_mensaje_at"`
	NeedsName     bool       `json:"necesita_nombre"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToThreadResponse maps a thread to its response shape
func ToThreadResponse(t *convenio.Thread) ThreadResponse {
	return ThreadResponse{
		ID:            t.ID,
		ConvenioID:    t.ConvenioID,
		ContactName:   t.ContactName,
		Status:        string(t.Status),
		LastMessageAt: t.LastMessageAt,
		NeedsName:     t.NeedsContactName(),
		CreatedAt:     t.CreatedAt,
	}
}

// SetThreadNameRequest sets the partner contact display name on a thread
type SetThreadNameRequest struct {
	Nombre string `json:"nombre" binding:"required,min=1,max=100"`
}

// SendMessageRequest represents a request to send a chat message. Either
// thread_id or convenio_id must be provided.
type SendMessageRequest struct {
	ThreadID   int64  `json:"thread_id"`
	ConvenioID int64  `json:"convenio_id"`
	MonthStart string `json:"monthStart" binding:"required"`
	SenderTipo string `json:"sender_tipo" binding:"required,oneof=CONVENIO GIMNASIO"`
	Mensaje    string `json:"mensaje" binding:"required"`
	// Sender identity fallbacks, used when no authenticated session is
	// present (partner-facing endpoints are unauthenticated).
	UserID int64  `json:"user_id"`
	Nombre string `json:"nombre"`
}

// EditMessageRequest replaces a message body
type EditMessageRequest struct {
	Mensaje string `json:"mensaje" binding:"required"`
}

// DeleteMessageRequest records who deleted a message and why
type DeleteMessageRequest struct {
	UserID int64  `json:"user_id"`
	Nombre string `json:"nombre"`
	Motivo string `json:"motivo"`
}

// MarkMessageReadRequest identifies the reader marking a message read
type MarkMessageReadRequest struct {
	UserID int64 `json:"user_id"`
}

// ListMessagesRequest filters a message listing
type ListMessagesRequest struct {
	ThreadID       int64
	MonthStart     string
	ViewerUserID   int64
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// MessageResponse represents one chat message
type MessageResponse struct {
	ID           int64      `json:"id"`
	ThreadID     int64      `json:"thread_id"`
	MonthStart   string     `json:"monthStart"`
	SenderTipo   string     `json:"sender_tipo"`
	SenderNombre string     `json:"sender_nombre"`
	Mensaje      string     `json:"mensaje"`
	EditedAt     *time.Time `json:"edited_at"`
	DeletedAt    *time.Time `json:"deleted_at"`
	DeletedBy    string     `json:"deleted_by,omitempty"`
	DeleteReason string     `json:"delete_reason,omitempty"`
	Leido        bool       `json:"leido"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToMessageResponse maps a message; read reports whether the viewer has a
// read receipt for it.
func ToMessageResponse(m *convenio.Message, read bool) MessageResponse {
	return MessageResponse{
		ID:           m.ID,
		ThreadID:     m.ThreadID,
		MonthStart:   m.MonthStart.String(),
		SenderTipo:   string(m.SenderRole),
		SenderNombre: m.SenderName,
		Mensaje:      m.Body,
		EditedAt:     m.EditedAt,
		DeletedAt:    m.DeletedAt,
		DeletedBy:    m.DeletedBy,
		DeleteReason: m.DeleteReason,
		Leido:        read,
		CreatedAt:    m.CreatedAt,
	}
}

// MessageListResponse is one page of messages. NoLeidos is only computed when
// a viewer id was supplied.
type MessageListResponse struct {
	Mensajes []MessageResponse `json:"mensajes"`
	Total    int64             `json:"total"`
	NoLeidos int64             `json:"no_leidos"`
}

// =============================================================================
// Monthly action DTOs
// =============================================================================

// UpsertActionRequest writes an operational monthly action
type UpsertActionRequest struct {
	ConvenioID  int64  `json:"convenio_id" binding:"required,gt=0"`
	MonthStart  string `json:"monthStart" binding:"required"`
	Tipo        string `json:"tipo" binding:"required,oneof=FINALIZAR_CARGA ENVIAR_LISTADO"`
	Descripcion string `json:"descripcion"`
	Metadata    string `json:"metadata"`
	UserID      int64  `json:"user_id"`
	Nombre      string `json:"nombre"`
}

// MarkActionReadRequest marks one monthly action row as read
type MarkActionReadRequest struct {
	ConvenioID int64  `json:"convenio_id" binding:"required,gt=0"`
	MonthStart string `json:"monthStart" binding:"required"`
	Tipo       string `json:"tipo"`
	UserID     int64  `json:"user_id"`
	Nombre     string `json:"nombre"`
}

// ActionResponse represents one monthly action row
type ActionResponse struct {
	ID          int64      `json:"id"`
	ConvenioID  int64      `json:"convenio_id"`
	MonthStart  string     `json:"monthStart"`
	Tipo        string     `json:"tipo"`
	Descripcion string     `json:"descripcion"`
	CreatedBy   string     `json:"created_by"`
	Leido       bool       `json:"leido"`
	LeidoBy     string     `json:"leido_by,omitempty"`
	LeidoAt     *time.Time `json:"leido_at"`
	Metadata    string     `json:"metadata"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToActionResponse maps a monthly action to its response shape
func ToActionResponse(a *convenio.MonthlyAction) ActionResponse {
	return ActionResponse{
		ID:          a.ID,
		ConvenioID:  a.ConvenioID,
		MonthStart:  a.MonthStart.String(),
		Tipo:        string(a.Type),
		Descripcion: a.Description,
		CreatedBy:   a.CreatedBy,
		Leido:       a.Leido,
		LeidoBy:     a.LeidoBy,
		LeidoAt:     a.LeidoAt,
		Metadata:    a.Metadata,
		UpdatedAt:   a.UpdatedAt,
	}
}

// PendingCountResponse reports how many unread actions a convenio has
type PendingCountResponse struct {
	ConvenioID int64  `json:"convenio_id"`
	MonthStart string `json:"monthStart,omitempty"`
	Count      int64  `json:"count"`
}
