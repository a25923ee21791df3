package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gymhub/backend/internal/infrastructure/auth"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey      = "jwt_claims"
	JWTUserIDKey      = "jwt_user_id"
	JWTDisplayNameKey = "jwt_display_name"
	JWTRoleKey        = "jwt_role"
	AuthHeaderKey     = "Authorization"
	BearerPrefix      = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig returns the default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/system/ping",
			"/api/v1/auth/login",
		},
	}
}

// JWTAuth creates JWT authentication middleware
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthWithConfig creates JWT authentication middleware with custom config
func JWTAuthWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, "Se requiere autenticación")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, "Se requiere autenticación")
			return
		}

		if !validateAndStore(c, cfg, tokenString) {
			return
		}
		c.Next()
	}
}

// JWTOptional creates middleware that resolves the identity when a bearer
// token is sent but lets anonymous requests through. Partner-facing routes
// use it: convenios have no staff accounts, while staff calling the same
// routes still get their claims resolved.
func JWTOptional(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTOptionalWithConfig(DefaultJWTConfig(jwtService))
}

// JWTOptionalWithConfig creates optional JWT middleware with custom config.
// A token that is sent and fails validation is still rejected.
func JWTOptionalWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if !strings.HasPrefix(authHeader, BearerPrefix) || tokenString == "" {
			abortUnauthorized(c, cfg, "Token inválido")
			return
		}

		if !validateAndStore(c, cfg, tokenString) {
			return
		}
		c.Next()
	}
}

// validateAndStore validates the token and puts the claims on the context.
// On failure it aborts the request and returns false.
func validateAndStore(c *gin.Context, cfg JWTMiddlewareConfig, tokenString string) bool {
	claims, err := cfg.JWTService.ValidateToken(tokenString)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("token validation failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
		}
		message := "Token inválido"
		if err == auth.ErrExpiredToken {
			message = "El token expiró"
		}
		abortUnauthorized(c, cfg, message)
		return false
	}

	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTDisplayNameKey, claims.DisplayName)
	c.Set(JWTRoleKey, claims.Role)
	return true
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, message string) {
	c.Header("X-Error-Code", dto.ErrCodeUnauthorized)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}

// GetJWTClaims retrieves JWT claims from gin.Context, nil when the request
// came through an unauthenticated path.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the authenticated user ID, 0 when absent
func GetJWTUserID(c *gin.Context) int64 {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(int64); ok {
			return id
		}
	}
	return 0
}

// GetJWTDisplayName retrieves the authenticated user's display name
func GetJWTDisplayName(c *gin.Context) string {
	if name, exists := c.Get(JWTDisplayNameKey); exists {
		if n, ok := name.(string); ok {
			return n
		}
	}
	return ""
}

// GetJWTRole retrieves the authenticated user's role
func GetJWTRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
