package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inmogest/backend/internal/infrastructure/auth"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware.
const (
	ContextKeyJWTClaims = "jwt_claims"
	ContextKeyUserID    = "jwt_user_id"
	ContextKeyUsername  = "jwt_username"
	ContextKeyRole      = "jwt_role"
)

// JWTConfig configures the JWT authentication middleware.
type JWTConfig struct {
	Service *auth.JWTService
	// SkipPaths are exact paths that bypass authentication.
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication.
	SkipPathPrefixes []string
}

// JWT returns a middleware that authenticates requests with a Bearer token.
func JWT(config JWTConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range config.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortAuthError(c, "INVALID_TOKEN", "missing authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			abortAuthError(c, "INVALID_TOKEN", "authorization header must use the Bearer scheme")
			return
		}
		tokenString := strings.TrimSpace(header[len(bearerPrefix):])
		if tokenString == "" {
			abortAuthError(c, "INVALID_TOKEN", "empty bearer token")
			return
		}

		claims, err := config.Service.ValidateToken(tokenString)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		c.Set(ContextKeyJWTClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects authenticated requests
// whose token does not carry one of the given roles. It must run after JWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if _, ok := allowed[role]; !ok {
			requestID := c.GetString(ContextKeyRequestID)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "insufficient role", requestID))
			return
		}
		c.Next()
	}
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortAuthError(c, "TOKEN_EXPIRED", "token has expired")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortAuthError(c, "INVALID_TOKEN", "token is not yet valid")
	default:
		abortAuthError(c, "INVALID_TOKEN", "invalid token")
	}
}

func abortAuthError(c *gin.Context, code, message string) {
	requestID := c.GetString(ContextKeyRequestID)
	apiCode := dto.NormalizeErrorCode(code)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(apiCode),
		dto.NewErrorResponseWithRequestID(apiCode, message, requestID))
}

// GetJWTClaims returns the validated claims set by the JWT middleware.
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextKeyJWTClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user's ID, or uuid.Nil when the
// request is unauthenticated.
func GetJWTUserID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(ContextKeyUserID))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetJWTUsername returns the authenticated username.
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetJWTRole returns the authenticated user's role.
func GetJWTRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}
