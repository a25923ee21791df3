package convenio

import (
	"strings"
	"time"

	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/domain/shared/valueobject"
)

// ActionType classifies a monthly action row
type ActionType string

const (
	// ActionTypeChatMessage surfaces new partner chat activity on the
	// internal dashboard. Re-upserting it resets the read flag.
	ActionTypeChatMessage ActionType = "CHAT_MENSAJE"
	// ActionTypeFinishLoading marks that the convenio finished loading
	// its member roster for the month.
	ActionTypeFinishLoading ActionType = "FINALIZAR_CARGA"
	// ActionTypeSendRoster marks that the convenio sent its member
	// roster for the month.
	ActionTypeSendRoster ActionType = "ENVIAR_LISTADO"
)

// previewMaxRunes is where chat previews stored on the action row are
// ellipsized.
const previewMaxRunes = 140

// MonthlyAction is a per-convenio, per-month, per-type record tracking an
// operational or notification event and its read status. The
// (convenio, month, type) triple is unique; writes are upserts.
type MonthlyAction struct {
	shared.BaseAggregateRoot
	ConvenioID  int64                  `gorm:"not null;uniqueIndex:idx_accion_convenio_mes_tipo,priority:1"`
	MonthStart  valueobject.MonthStart `gorm:"type:varchar(19);not null;uniqueIndex:idx_accion_convenio_mes_tipo,priority:2"`
	Type        ActionType             `gorm:"type:varchar(30);not null;uniqueIndex:idx_accion_convenio_mes_tipo,priority:3"`
	Description string                 `gorm:"type:varchar(200)"`
	CreatedBy   string                 `gorm:"type:varchar(100)"`
	Leido       bool                   `gorm:"not null;default:false"`
	LeidoBy     string                 `gorm:"type:varchar(100)"`
	LeidoAt     *time.Time
	Metadata    string `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (MonthlyAction) TableName() string {
	return "convenios_mes_acciones"
}

// NewMonthlyAction creates an unread monthly action
func NewMonthlyAction(convenioID int64, month valueobject.MonthStart, actionType ActionType, description, createdBy string) (*MonthlyAction, error) {
	if convenioID <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "convenio_id inválido")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("VALIDATION", "Mes inválido: se espera formato YYYY-MM-01 00:00:00")
	}
	if err := validateActionType(actionType); err != nil {
		return nil, err
	}

	return &MonthlyAction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ConvenioID:        convenioID,
		MonthStart:        month,
		Type:              actionType,
		Description:       truncateDescription(description),
		CreatedBy:         strings.TrimSpace(createdBy),
		Leido:             false,
		Metadata:          "{}",
	}, nil
}

// MarkRead stamps the action as read by the given user
func (a *MonthlyAction) MarkRead(readBy string) {
	now := time.Now()
	a.Leido = true
	a.LeidoBy = strings.TrimSpace(readBy)
	a.LeidoAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
}

// ResetUnread clears the read state, used when fresh partner chat activity
// arrives for a month already marked as seen.
func (a *MonthlyAction) ResetUnread() {
	a.Leido = false
	a.LeidoBy = ""
	a.LeidoAt = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Refresh overwrites description, creator and metadata. Read state is left
// untouched: only chat activity resets it, via ResetUnread.
func (a *MonthlyAction) Refresh(description, createdBy, metadata string) {
	a.Description = truncateDescription(description)
	a.CreatedBy = strings.TrimSpace(createdBy)
	if metadata != "" {
		a.Metadata = metadata
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

func truncateDescription(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= previewMaxRunes {
		return s
	}
	return string(runes[:previewMaxRunes]) + "…"
}

func validateActionType(t ActionType) error {
	switch t {
	case ActionTypeChatMessage, ActionTypeFinishLoading, ActionTypeSendRoster:
		return nil
	default:
		return shared.NewDomainError("VALIDATION", "tipo debe ser CHAT_MENSAJE, FINALIZAR_CARGA o ENVIAR_LISTADO")
	}
}

// OperationalActionTypes are the action types writable through the general
// upsert endpoint. CHAT_MENSAJE rows are only written by the chat path.
func OperationalActionTypes() []ActionType {
	return []ActionType{ActionTypeFinishLoading, ActionTypeSendRoster}
}

// IsOperational reports whether t may be written through the general
// upsert path
func IsOperational(t ActionType) bool {
	return t == ActionTypeFinishLoading || t == ActionTypeSendRoster
}
