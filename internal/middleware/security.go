package middleware

import (
	"net/http"
	"time"

	"acquisitions/internal/cookies"
	"acquisitions/internal/models"
	"acquisitions/internal/shield"
	"acquisitions/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Shield creates the adaptive rate-shield middleware. Every request —
// authenticated or not — is submitted to the protection service with a
// sliding-window rule sized by the requester's role. The middleware runs
// before the authentication gate, so it derives the role by peeking at the
// token cookie without rejecting on verification failure.
func Shield(protector shield.Protector, codec *token.Codec, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := roleFromCookie(c, codec)

		parsed, known := models.ParseRole(role)
		if !known {
			logger.Warn("Unknown role for rate limiting, using guest defaults", zap.String("role", role))
		}
		limit := parsed.RequestsPerMinute()

		rule := shield.SlidingWindow(role+"-rate-limit", time.Minute, limit)
		req := shield.RequestInfo{
			IP:        c.ClientIP(),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			UserAgent: c.Request.UserAgent(),
		}

		decision, err := protector.Protect(c.Request.Context(), req, rule)
		if err != nil {
			// Fail closed: an unreachable decision service denies the
			// request rather than letting it through unchecked.
			logger.Error("Security middleware error",
				zap.Error(err),
				zap.String("path", req.Path),
				zap.String("method", req.Method),
				zap.String("ip", req.IP))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Something went wrong with security middleware",
			})
			return
		}

		if decision.IsDenied() && decision.IsBot() {
			logger.Warn("Bot request blocked",
				zap.String("ip", req.IP),
				zap.String("userAgent", req.UserAgent),
				zap.String("path", req.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Automated requests are not allowed",
			})
			return
		}

		if decision.IsDenied() && decision.IsShield() {
			logger.Warn("Shield blocked request",
				zap.String("ip", req.IP),
				zap.String("userAgent", req.UserAgent),
				zap.String("path", req.Path),
				zap.String("method", req.Method))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Request blocked by security policy",
			})
			return
		}

		if decision.IsDenied() && decision.IsRateLimit() {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", req.IP),
				zap.String("userAgent", req.UserAgent),
				zap.String("path", req.Path),
				zap.String("role", role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Too many requests",
			})
			return
		}

		c.Next()
	}
}

// roleFromCookie returns the role carried by a valid token cookie, or
// "guest". Verification failures are not rejections here; the auth gate
// handles those on protected routes.
func roleFromCookie(c *gin.Context, codec *token.Codec) string {
	tokenString, ok := cookies.Get(c)
	if !ok {
		return models.RoleGuest.String()
	}

	claims, err := codec.Verify(tokenString)
	if err != nil || claims.Role == "" {
		return models.RoleGuest.String()
	}

	return claims.Role
}
