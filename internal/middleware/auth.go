package middleware

import (
	"net/http"

	"acquisitions/internal/cookies"
	"acquisitions/internal/models"
	"acquisitions/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// identityKey is the gin context key the authenticated claims live under.
const identityKey = "identity"

// Identity returns the claims attached by RequireAuth, if any.
func Identity(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}

// RequireAuth creates a Gin middleware that authenticates requests via the
// token cookie. On success the verified claims are attached to the context;
// otherwise the request is rejected with 401. Rejections are logged with the
// request path, method and client address, never with the token itself.
func RequireAuth(codec *token.Codec, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := cookies.Get(c)
		if !ok {
			logger.Warn("Missing auth token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication token is required",
			})
			return
		}

		claims, err := codec.Verify(tokenString)
		if err != nil {
			logger.Warn("Invalid auth token",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
			return
		}

		if claims.Role == "" {
			claims.Role = models.RoleUser.String()
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// RequireRole creates a Gin middleware that only lets through identities
// whose role is in the allow-list. It must run after RequireAuth.
func RequireRole(logger *zap.Logger, roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role.String()] = true
	}

	return func(c *gin.Context) {
		claims, ok := Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		if !allowed[claims.Role] {
			logger.Warn("Role not permitted",
				zap.String("role", claims.Role),
				zap.Any("required", roles),
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}
