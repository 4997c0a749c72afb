package setup

import (
	"net/http"

	"github.com/Badsnus/cu-clubs-web/cmd/web"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/handlers/admin"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/handlers/auth"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/handlers/user"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/views"
	"github.com/Badsnus/cu-clubs-web/pkg/uploads"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func Setup(app *web.App) error {
	store, err := uploads.New(viper.GetString("web.upload-dir"))
	if err != nil {
		return err
	}

	middle := middlewares.New(app)
	authHandler := auth.New(app)
	adminHandler := admin.New(app)
	userHandler, err := user.New(app, store)
	if err != nil {
		return err
	}

	app.MaxMultipartMemory = viper.GetInt64("web.max-upload-size")
	app.SetHTMLTemplate(views.Templates())
	app.Use(gin.CustomRecovery(middle.Recovery))
	app.Use(middle.AccessLog)

	app.StaticFS("/static", views.Static())
	app.GET("/health", health(app))

	app.Use(middle.LoadSession)

	// Auth:
	app.GET("/login", authHandler.LoginPage)
	app.POST("/login", authHandler.Login)

	authorized := app.Group("/", middle.Authorized)
	authorized.GET("/", authHandler.Home)
	authorized.POST("/logout", authHandler.Logout)

	// User:
	authorized.GET("/events", userHandler.Events)
	authorized.GET("/events/:id", userHandler.Event)
	authorized.POST("/events/:id/enroll", userHandler.Enroll)
	authorized.POST("/events/:id/reports", userHandler.SubmitReport)
	authorized.GET("/events/:id/qr.png", userHandler.EventQR)
	authorized.GET("/clubs/:id/events.ics", userHandler.ClubCalendar)

	// Admin:
	adminGroup := authorized.Group("/admin", middle.RequireAdmin)
	adminGroup.GET("", adminHandler.Index)
	adminGroup.GET("/club_report", adminHandler.ClubReport)
	adminGroup.GET("/club_report/export.xlsx", adminHandler.ExportClubReport)
	adminGroup.POST("/club_report/email", adminHandler.EmailClubReport)
	adminGroup.GET("/event_reports", adminHandler.EventReports)
	adminGroup.POST("/participations/:id/status", adminHandler.SetParticipationStatus)
	adminGroup.StaticFS("/uploads", gin.Dir(store.Dir(), false))

	app.NoRoute(func(c *gin.Context) {
		views.Error(c, http.StatusNotFound, "Page not found")
	})
	return nil
}

func health(app *web.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, err := app.DB.DB()
		if err == nil {
			err = db.PingContext(c.Request.Context())
		}
		if err != nil {
			app.Logger.Errorf("health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
