package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Recurso no encontrado")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "El recurso ya existe")
	ErrInvalidInput  = NewDomainError("VALIDATION", "Datos de entrada inválidos")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "No autorizado")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Acceso denegado")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operación no permitida en el estado actual")
)
