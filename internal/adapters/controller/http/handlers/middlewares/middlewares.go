package middlewares

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Badsnus/cu-clubs-web/cmd/web"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/session"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/views"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type authService interface {
	ParseSession(ctx context.Context, token string) (*service.Claims, error)
}

type Handler struct {
	authService  authService
	logger       *types.Logger
	cookieSecure bool
}

func New(app *web.App) *Handler {
	userStorage := postgres.NewUserStorage(app.DB)

	return &Handler{
		authService: service.NewAuthService(
			app.Logger,
			userStorage,
			app.Redis.Sessions,
			viper.GetString("web.jwt-secret"),
			viper.GetDuration("web.session-ttl"),
		),
		logger:       app.Logger,
		cookieSecure: viper.GetBool("web.cookie-secure"),
	}
}

// AccessLog writes one line per request.
func (h Handler) AccessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	log := h.logger.Infof
	switch {
	case status >= http.StatusInternalServerError:
		log = h.logger.Errorf
	case status >= http.StatusBadRequest:
		log = h.logger.Warnf
	}

	uid := uint(0)
	if claims := session.Get(c); claims != nil {
		uid = claims.UserID
	}
	log("(user: %d) %s %s %d %s %s", uid, c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.ClientIP())
}

// Recovery turns panics into a 500 page or JSON response.
func (h Handler) Recovery(c *gin.Context, recovered any) {
	h.logger.Errorf("panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	if session.WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Something went wrong, please try again later"))
		return
	}
	views.Error(c, http.StatusInternalServerError, "Something went wrong, please try again later")
	c.Abort()
}

// LoadSession attaches the claims of a valid session cookie to the request.
// Requests without a valid session pass through anonymously.
func (h Handler) LoadSession(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil || token == "" {
		c.Next()
		return
	}

	claims, err := h.authService.ParseSession(c.Request.Context(), token)
	if err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("failed to check session: %v", err)
		}
		session.ClearCookie(c, h.cookieSecure)
		c.Next()
		return
	}

	session.Set(c, claims)
	c.Next()
}

// Authorized rejects anonymous requests. Page requests are sent to the login
// page, script requests get a 401 form response.
func (h Handler) Authorized(c *gin.Context) {
	if session.Get(c) != nil {
		c.Next()
		return
	}

	if session.WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Please sign in first").WithRedirect("/login"))
		return
	}
	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

func (h Handler) RequireAdmin(c *gin.Context) {
	if session.IsAdmin(c) {
		c.Next()
		return
	}

	if claims := session.Get(c); claims != nil {
		h.logger.Warnf("(user: %d) tried to open %s without admin rights", claims.UserID, c.Request.URL.Path)
	}
	if session.WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Admins only"))
		return
	}
	views.Error(c, http.StatusForbidden, "This page is for admins only")
	c.Abort()
}
