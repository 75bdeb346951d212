package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func tokenCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	for _, ck := range res.Cookies() {
		if ck.Name == "access_token" {
			return ck
		}
	}
	t.Fatal("access_token cookie not set")
	return nil
}

func TestSetTokenCookieSecurePolicy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	SetTokenCookie(c, "tok", 60, true)

	ck := tokenCookie(t, rec)
	require.True(t, ck.Secure)
	require.True(t, ck.HttpOnly)
	require.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	require.Equal(t, "tok", ck.Value)
}

func TestSetTokenCookieLaxByDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	SetTokenCookie(c, "tok", 60, false)

	ck := tokenCookie(t, rec)
	require.False(t, ck.Secure)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
}

func TestClearTokenCookieExpiresImmediately(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	ClearTokenCookie(c, false)

	ck := tokenCookie(t, rec)
	require.Empty(t, ck.Value)
	require.Negative(t, ck.MaxAge)
}
