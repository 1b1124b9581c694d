package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"acquisitions/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env = "development"
	return cfg
}

func prodConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env = "production"
	return cfg
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	Set(c, "some-token", devConfig())

	cookie := responseCookie(t, w)
	assert.Equal(t, Name, cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "plain HTTP in development")
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)
}

func TestSet_SecureInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	Set(c, "some-token", prodConfig())

	assert.True(t, responseCookie(t, w).Secure)
}

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: Name, Value: "some-token"})

	value, ok := Get(c)
	assert.True(t, ok)
	assert.Equal(t, "some-token", value)
}

func TestGet_Absent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := Get(c)
	assert.False(t, ok)
}

func TestClear_IsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	// No cookie on the request; clearing must still succeed.
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	Clear(c, devConfig())
	Clear(c, devConfig())

	for _, cookie := range w.Result().Cookies() {
		assert.Equal(t, Name, cookie.Name)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
}
