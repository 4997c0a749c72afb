package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/Badsnus/cu-clubs-web/cmd/web"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/session"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/views"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/validator"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type authService interface {
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	Logout(ctx context.Context, claims *service.Claims) error
}

type Handler struct {
	authService authService
	logger      *types.Logger

	sessionTTL   time.Duration
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
		sessionTTL:   viper.GetDuration("web.session-ttl"),
		cookieSecure: viper.GetBool("web.cookie-secure"),
	}
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// Home sends admins to the admin index and everyone else to the events list.
func (h Handler) Home(c *gin.Context) {
	if session.IsAdmin(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/events")
}

func (h Handler) LoginPage(c *gin.Context) {
	if session.Get(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	views.Render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Sign in",
		"Next":  session.SafeRedirect(c.Query("next"), ""),
	})
}

func (h Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Email and password are required"))
		return
	}
	if !validator.Email(form.Email) {
		c.JSON(http.StatusBadRequest, dto.Fail("Enter a valid email address"))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("failed to sign in %s: %v", form.Email, err)
		}
		views.JSONError(c, err)
		return
	}

	session.SetCookie(c, token, h.sessionTTL, h.cookieSecure)

	fallback := "/events"
	if user.IsAdmin {
		fallback = "/admin"
	}
	c.JSON(http.StatusOK, dto.Ok("Welcome, "+user.FullName).WithRedirect(session.SafeRedirect(form.Next, fallback)))
}

func (h Handler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), session.Get(c)); err != nil {
		h.logger.Errorf("(user: %d) failed to revoke session: %v", session.Get(c).UserID, err)
		views.JSONError(c, err)
		return
	}
	session.ClearCookie(c, h.cookieSecure)
	c.JSON(http.StatusOK, dto.Ok("Signed out").WithRedirect("/login"))
}
