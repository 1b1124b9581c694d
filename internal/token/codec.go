package token

import (
	"errors"
	"fmt"
	"time"

	"acquisitions/internal/config"
	"acquisitions/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultSecret is the fallback signing key used when SECRET is not
// configured. Running with it outside development is a misconfiguration.
const DefaultSecret = "your-secret-key-please-change-in-production"

// TTL is how long an issued token stays valid. Cookie max-age must match.
const TTL = 24 * time.Hour

var (
	ErrSigningFailed = errors.New("failed to sign token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
)

// Codec signs and verifies the JWTs carried by the token cookie.
type Codec struct {
	secret []byte
	logger *zap.Logger
}

// NewCodec builds a codec from the configured secret, falling back to
// DefaultSecret. The fallback is warned about loudly when the server is not
// running in development mode.
func NewCodec(cfg *config.Config, logger *zap.Logger) *Codec {
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = DefaultSecret
	}

	if secret == DefaultSecret && cfg.Env != "development" {
		logger.Warn("Using default JWT secret outside development. Set SECRET in the environment.")
	}

	return &Codec{secret: []byte(secret), logger: logger}
}

// Sign mints a token for the given identity with a fixed expiry of TTL.
func (c *Codec) Sign(userID int64, email, role string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		c.logger.Error("Failed to sign JWT token", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	return tokenString, nil
}

// Verify parses and validates a token string. Callers get one of the opaque
// sentinel errors above; parser internals stay out of HTTP responses.
func (c *Codec) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
