package dto

import "github.com/gymhub/backend/internal/domain/shared"

// ErrorResponse is the error body the dashboard expects. Success
// responses carry the resource DTO directly, without an envelope.
type ErrorResponse struct {
	MensajeError string `json:"mensajeError"`
}

// NewErrorResponse creates an error body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{MensajeError: message}
}

// ListRequest holds common pagination query parameters
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
}

// ToFilter converts the request into a repository filter, filling defaults
func (r ListRequest) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if r.PageSize > 0 {
		filter.Limit = r.PageSize
	}
	if r.Page > 1 {
		filter.Offset = (r.Page - 1) * filter.Limit
	}
	if r.OrderBy != "" {
		filter.OrderBy = r.OrderBy
	}
	return filter
}
