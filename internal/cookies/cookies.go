package cookies

import (
	"net/http"

	"acquisitions/internal/config"
	"acquisitions/internal/token"

	"github.com/gin-gonic/gin"
)

// Name is the cookie the credential token travels in.
const Name = "token"

// Get reads the token cookie from the request. It reports false when the
// cookie is absent or empty.
func Get(c *gin.Context) (string, bool) {
	value, err := c.Cookie(Name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Set stores the token in an HttpOnly cookie whose lifetime matches the
// token expiry. The Secure attribute is only set in production so local
// plain-HTTP development keeps working.
func Set(c *gin.Context, tokenString string, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(Name, tokenString, int(token.TTL.Seconds()), "/", "", cfg.IsProduction(), true)
}

// Clear removes the token cookie. Clearing an absent cookie is a no-op for
// the client, so sign-out stays idempotent.
func Clear(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(Name, "", -1, "/", "", cfg.IsProduction(), true)
}
