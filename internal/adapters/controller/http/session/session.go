package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "cu_clubs_session"
	contextKey = "session"
)

func Set(c *gin.Context, claims *service.Claims) {
	c.Set(contextKey, claims)
}

// Get returns the claims of the signed in user, or nil for anonymous requests.
func Get(c *gin.Context) *service.Claims {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}

func IsAdmin(c *gin.Context) bool {
	claims := Get(c)
	return claims != nil && claims.Admin
}

// WantsJSON reports whether the request came from a script rather than a
// page navigation.
func WantsJSON(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func SetCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

// SafeRedirect keeps redirects after login on this site.
func SafeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
