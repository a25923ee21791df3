package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	convenioapp "github.com/gymhub/backend/internal/application/convenio"
)

// ChatHandler handles the convenio chat endpoints. Partner-facing routes
// work without a session; staff requests carry a JWT whose identity takes
// priority over any identity fields in the body.
type ChatHandler struct {
	BaseHandler
	chatService *convenioapp.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *convenioapp.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// GetThread handles GET /api/v1/convenio-chat/thread?convenio_id=
// The thread is created on first access.
func (h *ChatHandler) GetThread(c *gin.Context) {
	convenioID, err := strconv.ParseInt(c.Query("convenio_id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Se requiere convenio_id")
		return
	}

	resp, err := h.chatService.GetOrCreateThread(c.Request.Context(), convenioID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetThreadName handles PATCH /api/v1/convenio-chat/thread/:id/nombre
func (h *ChatHandler) SetThreadName(c *gin.Context) {
	threadID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req convenioapp.SetThreadNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere nombre")
		return
	}

	resp, err := h.chatService.SetThreadContactName(c.Request.Context(), threadID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMessages handles GET /api/v1/convenio-chat/messages
// Query: thread_id (required), monthStart, viewer_user_id, include_deleted,
// limit, offset.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	threadID, err := strconv.ParseInt(c.Query("thread_id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Se requiere thread_id")
		return
	}

	req := convenioapp.ListMessagesRequest{
		ThreadID:       threadID,
		MonthStart:     c.Query("monthStart"),
		IncludeDeleted: c.Query("include_deleted") == "true",
	}
	if viewer := c.Query("viewer_user_id"); viewer != "" {
		id, err := strconv.ParseInt(viewer, 10, 64)
		if err != nil {
			h.BadRequest(c, "viewer_user_id inválido")
			return
		}
		req.ViewerUserID = id
	} else if auth := getAuth(c); auth != nil {
		req.ViewerUserID = auth.UserID
	}
	if limit := c.Query("limit"); limit != "" {
		req.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		req.Offset, _ = strconv.Atoi(offset)
	}

	resp, err := h.chatService.ListMessages(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SendMessage handles POST /api/v1/convenio-chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req convenioapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.chatService.SendMessage(c.Request.Context(), req, getAuth(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// EditMessage handles PATCH /api/v1/convenio-chat/messages/:id
func (h *ChatHandler) EditMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req convenioapp.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere mensaje")
		return
	}

	resp, err := h.chatService.EditMessage(c.Request.Context(), messageID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteMessage handles DELETE /api/v1/convenio-chat/messages/:id
// Deletion is soft and idempotent; the body may carry who and why.
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req convenioapp.DeleteMessageRequest
	// The delete body is optional
	_ = c.ShouldBindJSON(&req)

	resp, err := h.chatService.DeleteMessage(c.Request.Context(), messageID, req, getAuth(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkMessageRead handles POST /api/v1/convenio-chat/messages/:id/read
func (h *ChatHandler) MarkMessageRead(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req convenioapp.MarkMessageReadRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.chatService.MarkMessageRead(c.Request.Context(), messageID, req, getAuth(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkChatActionRead handles POST /api/v1/convenio-chat/acciones/marcar-leido
// It clears the CHAT_MENSAJE badge for one convenio and month.
func (h *ChatHandler) MarkChatActionRead(c *gin.Context) {
	var req convenioapp.MarkActionReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere convenio_id y monthStart")
		return
	}

	if err := h.chatService.MarkChatActionRead(c.Request.Context(), req, getAuth(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
