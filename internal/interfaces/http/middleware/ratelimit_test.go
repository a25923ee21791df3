package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("cliente1"), "request %d should be allowed", i+1)
		}
	})

	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("cliente2"))
		}
		assert.False(t, limiter.Allow("cliente2"))
	})

	t.Run("separate limits per client", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("clienteA"))
		assert.True(t, limiter.Allow("clienteA"))
		assert.False(t, limiter.Allow("clienteA"))

		assert.True(t, limiter.Allow("clienteB"))
		assert.True(t, limiter.Allow("clienteB"))
	})

	t.Run("resets after window", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("cliente3"))
		assert.True(t, limiter.Allow("cliente3"))
		assert.False(t, limiter.Allow("cliente3"))

		time.Sleep(60 * time.Millisecond)

		assert.True(t, limiter.Allow("cliente3"))
	})

	t.Run("remaining returns correct count", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("nuevo"))

		limiter.Allow("nuevo")
		limiter.Allow("nuevo")

		assert.Equal(t, 3, limiter.Remaining("nuevo"))
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("concurrente") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(limit int) *gin.Engine {
		engine := gin.New()
		engine.Use(RateLimit(NewRateLimiter(limit, time.Minute)))
		engine.GET("/recurso", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return engine
	}

	t.Run("passes requests through and sets headers", func(t *testing.T) {
		engine := newEngine(10)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("rejects with 429 once the window is exhausted", func(t *testing.T) {
		engine := newEngine(2)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recurso", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recurso", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "RATE_LIMITED", w.Header().Get("X-Error-Code"))
		assert.JSONEq(t, `{"mensajeError":"Demasiadas peticiones, intente nuevamente más tarde"}`, w.Body.String())
	})
}
