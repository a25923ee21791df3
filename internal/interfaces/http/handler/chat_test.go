package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	convenioapp "github.com/gymhub/backend/internal/application/convenio"
	"github.com/gymhub/backend/internal/domain/convenio"
	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/infrastructure/persistence"
)

// chatTestServer wires the chat and action handlers over an in-memory
// database, exercising the full stack below the JWT middleware.
func chatTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&convenio.Convenio{},
		&convenio.Thread{},
		&convenio.Message{},
		&convenio.MessageRead{},
		&convenio.MonthlyAction{},
		&identity.User{},
	))

	convenios := persistence.NewGormConvenioRepository(db)
	threads := persistence.NewGormThreadRepository(db)
	messages := persistence.NewGormMessageRepository(db)
	actions := persistence.NewGormMonthlyActionRepository(db)
	users := persistence.NewGormUserRepository(db)
	scope := persistence.NewGormChatTransactionScope(db)
	resolver := convenioapp.NewIdentityResolver(users)

	chatService := convenioapp.NewChatService(convenios, threads, messages, actions, scope, resolver, nil)
	actionService := convenioapp.NewActionService(actions, convenios, resolver, nil)

	chatHandler := NewChatHandler(chatService)
	actionHandler := NewActionHandler(actionService)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.GET("/convenio-chat/thread", chatHandler.GetThread)
	api.PATCH("/convenio-chat/thread/:id/nombre", chatHandler.SetThreadName)
	api.GET("/convenio-chat/messages", chatHandler.ListMessages)
	api.POST("/convenio-chat/messages", chatHandler.SendMessage)
	api.PATCH("/convenio-chat/messages/:id", chatHandler.EditMessage)
	api.DELETE("/convenio-chat/messages/:id", chatHandler.DeleteMessage)
	api.POST("/convenio-chat/messages/:id/read", chatHandler.MarkMessageRead)
	api.POST("/convenio-chat/acciones/marcar-leido", chatHandler.MarkChatActionRead)
	api.GET("/convenios-mes-acciones", actionHandler.List)
	api.GET("/convenios-mes-acciones/pendientes/count", actionHandler.PendingCount)

	return engine, db
}

func seedConvenio(t *testing.T, db *gorm.DB) *convenio.Convenio {
	t.Helper()
	conv, err := convenio.NewConvenio("Empresa Andina SRL", "30-71234567-8")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormConvenioRepository(db).Save(context.Background(), conv))
	return conv
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const testMonth = "2025-06-01 00:00:00"

func TestChatEndpoints(t *testing.T) {
	engine, db := chatTestServer(t)
	conv := seedConvenio(t, db)

	t.Run("thread is created on first access", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/convenio-chat/thread?convenio_id=%d", conv.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var thread map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &thread))
		assert.Equal(t, float64(conv.ID), thread["convenio_id"])
		assert.Equal(t, true, thread["necesita_nombre"])
	})

	t.Run("unknown convenio is a 404 with mensajeError body", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/v1/convenio-chat/thread?convenio_id=9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", w.Header().Get("X-Error-Code"))
		assert.JSONEq(t, `{"mensajeError":"Convenio no encontrado"}`, w.Body.String())
	})

	t.Run("partner message raises the dashboard badge", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/convenio-chat/messages", gin.H{
			"convenio_id": conv.ID,
			"monthStart":  testMonth,
			"sender_tipo": "CONVENIO",
			"mensaje":     "Hola, subimos el listado de junio",
			"nombre":      "Carla",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var msg map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		assert.Equal(t, "CONVENIO", msg["sender_tipo"])
		assert.Equal(t, "Carla", msg["sender_nombre"])
		assert.Equal(t, testMonth, msg["monthStart"])

		count := doJSON(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/convenios-mes-acciones/pendientes/count?convenio_id=%d", conv.ID), nil)
		require.Equal(t, http.StatusOK, count.Code)
		var pending map[string]any
		require.NoError(t, json.Unmarshal(count.Body.Bytes(), &pending))
		assert.Equal(t, float64(1), pending["count"])
	})

	t.Run("marking the chat action read clears the badge", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/convenio-chat/acciones/marcar-leido", gin.H{
			"convenio_id": conv.ID,
			"monthStart":  testMonth,
			"nombre":      "Recepción",
		})
		require.Equal(t, http.StatusNoContent, w.Code)

		count := doJSON(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/convenios-mes-acciones/pendientes/count?convenio_id=%d", conv.ID), nil)
		var pending map[string]any
		require.NoError(t, json.Unmarshal(count.Body.Bytes(), &pending))
		assert.Equal(t, float64(0), pending["count"])
	})

	t.Run("invalid month is rejected", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/convenio-chat/messages", gin.H{
			"convenio_id": conv.ID,
			"monthStart":  "2025-06-15 00:00:00",
			"sender_tipo": "CONVENIO",
			"mensaje":     "hola",
			"nombre":      "Carla",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION", w.Header().Get("X-Error-Code"))
	})

	t.Run("soft delete keeps the row and is idempotent", func(t *testing.T) {
		send := doJSON(t, engine, http.MethodPost, "/api/v1/convenio-chat/messages", gin.H{
			"convenio_id": conv.ID,
			"monthStart":  testMonth,
			"sender_tipo": "CONVENIO",
			"mensaje":     "mensaje equivocado",
		})
		require.Equal(t, http.StatusCreated, send.Code)
		var msg map[string]any
		require.NoError(t, json.Unmarshal(send.Body.Bytes(), &msg))
		id := int64(msg["id"].(float64))

		del := doJSON(t, engine, http.MethodDelete,
			fmt.Sprintf("/api/v1/convenio-chat/messages/%d", id), gin.H{
				"nombre": "Admin",
				"motivo": "duplicado",
			})
		require.Equal(t, http.StatusOK, del.Code)
		var deleted map[string]any
		require.NoError(t, json.Unmarshal(del.Body.Bytes(), &deleted))
		assert.NotNil(t, deleted["deleted_at"])
		assert.Equal(t, "Admin", deleted["deleted_by"])

		again := doJSON(t, engine, http.MethodDelete,
			fmt.Sprintf("/api/v1/convenio-chat/messages/%d", id), gin.H{"nombre": "Otro"})
		require.Equal(t, http.StatusOK, again.Code)
		var repeat map[string]any
		require.NoError(t, json.Unmarshal(again.Body.Bytes(), &repeat))
		assert.Equal(t, "Admin", repeat["deleted_by"])
	})

	t.Run("unread listing counts partner messages without receipts", func(t *testing.T) {
		thread := doJSON(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/convenio-chat/thread?convenio_id=%d", conv.ID), nil)
		var th map[string]any
		require.NoError(t, json.Unmarshal(thread.Body.Bytes(), &th))
		threadID := int64(th["id"].(float64))

		w := doJSON(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/convenio-chat/messages?thread_id=%d&viewer_user_id=7", threadID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Equal(t, float64(1), list["no_leidos"])
	})
}

func TestChatEndpointsStoredNameWins(t *testing.T) {
	engine, db := chatTestServer(t)
	conv := seedConvenio(t, db)

	first := doJSON(t, engine, http.MethodPost, "/api/v1/convenio-chat/messages", gin.H{
		"convenio_id": conv.ID,
		"monthStart":  testMonth,
		"sender_tipo": "CONVENIO",
		"mensaje":     "primer contacto",
		"nombre":      "Mariana",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, engine, http.MethodPost, "/api/v1/convenio-chat/messages", gin.H{
		"convenio_id": conv.ID,
		"monthStart":  testMonth,
		"sender_tipo": "CONVENIO",
		"mensaje":     "otro mensaje",
		"nombre":      "Impostor",
	})
	require.Equal(t, http.StatusCreated, second.Code)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &msg))
	assert.Equal(t, "Mariana", msg["sender_nombre"])
}
