package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	notificationapp "github.com/gymhub/backend/internal/application/notification"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
	"github.com/gymhub/backend/internal/interfaces/http/middleware"
)

// NovedadHandler handles dashboard announcement endpoints
type NovedadHandler struct {
	BaseHandler
	novedadService *notificationapp.NovedadService
}

// NewNovedadHandler creates a new NovedadHandler
func NewNovedadHandler(novedadService *notificationapp.NovedadService) *NovedadHandler {
	return &NovedadHandler{novedadService: novedadService}
}

// Create handles POST /api/v1/novedades
func (h *NovedadHandler) Create(c *gin.Context) {
	var req notificationapp.CreateNovedadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	publishedBy := middleware.GetJWTDisplayName(c)
	if publishedBy == "" {
		h.Unauthorized(c, "Se requiere autenticación")
		return
	}

	resp, err := h.novedadService.Create(c.Request.Context(), req, publishedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListVisible handles GET /api/v1/novedades?audience=
func (h *NovedadHandler) ListVisible(c *gin.Context) {
	novedades, err := h.novedadService.ListVisible(c.Request.Context(), c.Query("audience"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"novedades": novedades})
}

// ListAll handles GET /api/v1/novedades/all
func (h *NovedadHandler) ListAll(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}

	resp, err := h.novedadService.List(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Expire handles POST /api/v1/novedades/:id/expire
func (h *NovedadHandler) Expire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.novedadService.Expire(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pin handles POST /api/v1/novedades/:id/pin?pinned=
func (h *NovedadHandler) Pin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	pinned, err := strconv.ParseBool(c.DefaultQuery("pinned", "true"))
	if err != nil {
		h.BadRequest(c, "pinned inválido")
		return
	}

	resp, err := h.novedadService.Pin(c.Request.Context(), id, pinned)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/novedades/:id
func (h *NovedadHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	if err := h.novedadService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// NotificationHandler handles the per-user notification bell endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Create handles POST /api/v1/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var req notificationapp.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.notificationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /api/v1/notifications?only_unread=
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID <= 0 {
		h.Unauthorized(c, "Se requiere autenticación")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}
	onlyUnread := c.Query("only_unread") == "true"

	resp, err := h.notificationService.ListByUser(c.Request.Context(), userID, onlyUnread, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	userID := middleware.GetJWTUserID(c)
	if userID <= 0 {
		h.Unauthorized(c, "Se requiere autenticación")
		return
	}

	resp, err := h.notificationService.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CountUnread handles GET /api/v1/notifications/count
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID <= 0 {
		h.Unauthorized(c, "Se requiere autenticación")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}
