package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.Header("X-Error-Code", dto.ErrCodeValidation)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("El cuerpo de la petición supera el tamaño máximo permitido"))
			return
		}

		// Streaming requests still get cut off at the limit
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
