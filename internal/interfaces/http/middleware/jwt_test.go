package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/infrastructure/auth"
	"github.com/gymhub/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "clave-de-firma-solo-para-tests-0123456789",
		AccessTokenExpiration: expiration,
		Issuer:                "gymhub-test",
	})
}

func jwtTestEngine(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	cfg := DefaultJWTConfig(svc)
	engine.Use(JWTAuthWithConfig(cfg))
	engine.GET("/api/v1/system/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	engine.GET("/api/v1/perfil", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"nombre":  GetJWTDisplayName(c),
			"rol":     GetJWTRole(c),
		})
	})
	return engine
}

func issueToken(t *testing.T, svc *auth.JWTService) string {
	t.Helper()
	user, err := identity.NewUser("recepcion.centro", "clave-segura-1", "Recepción Centro", identity.RoleReception)
	require.NoError(t, err)
	user.ID = 42

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	return token.AccessToken
}

func TestJWTAuth(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	t.Run("skip paths pass without a token", func(t *testing.T) {
		engine := jwtTestEngine(svc)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		engine := jwtTestEngine(svc)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/perfil", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", w.Header().Get("X-Error-Code"))
		assert.JSONEq(t, `{"mensajeError":"Se requiere autenticación"}`, w.Body.String())
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		engine := jwtTestEngine(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/perfil", nil)
		req.Header.Set(AuthHeaderKey, "Token abc123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		engine := jwtTestEngine(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/perfil", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"no-es-un-jwt")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"mensajeError":"Token inválido"}`, w.Body.String())
	})

	t.Run("expired token gets a specific message", func(t *testing.T) {
		expiredSvc := newTestJWTService(-time.Minute)
		engine := jwtTestEngine(expiredSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/perfil", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, expiredSvc))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"mensajeError":"El token expiró"}`, w.Body.String())
	})

	t.Run("valid token populates the context", func(t *testing.T) {
		engine := jwtTestEngine(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/perfil", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), "Recepción Centro")
		assert.Contains(t, w.Body.String(), "RECEPCION")
	})
}

func TestJWTOptional(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	newEngine := func() *gin.Engine {
		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.Use(JWTOptionalWithConfig(DefaultJWTConfig(svc)))
		engine.GET("/api/v1/convenio-chat/thread", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
		})
		return engine
	}

	t.Run("anonymous request passes through", func(t *testing.T) {
		engine := newEngine()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/convenio-chat/thread", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":0}`, w.Body.String())
	})

	t.Run("valid token resolves the identity", func(t *testing.T) {
		engine := newEngine()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/convenio-chat/thread", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
	})

	t.Run("a token that is sent must still be valid", func(t *testing.T) {
		engine := newEngine()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/convenio-chat/thread", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"no-es-un-jwt")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"mensajeError":"Token inválido"}`, w.Body.String())
	})
}
