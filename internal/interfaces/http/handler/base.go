package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	convenioapp "github.com/gymhub/backend/internal/application/convenio"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
	"github.com/gymhub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities. Success responses carry
// the resource DTO directly; errors carry a mensajeError body plus the
// domain code in the X-Error-Code header.
type BaseHandler struct{}

// getAuth builds the caller identity from the JWT claims, nil when the
// request came through an unauthenticated path.
func getAuth(c *gin.Context) *convenioapp.AuthContext {
	userID := middleware.GetJWTUserID(c)
	if userID <= 0 {
		return nil
	}
	return &convenioapp.AuthContext{
		UserID:      userID,
		DisplayName: middleware.GetJWTDisplayName(c),
	}
}

// Success sends a 200 response with the given payload
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the given payload
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.Header("X-Error-Code", code)
	c.JSON(statusCode, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 validation error
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, message)
}

// BindError sends a 400 with a field-level message for binding failures
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.BadRequest(c, middleware.ValidationMessage(err))
}

// NotFound sends a 404 error
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 error
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError converts domain errors to HTTP responses. Unknown error
// types come back as a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Ocurrió un error inesperado")
}
