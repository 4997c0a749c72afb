package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/adapters/config"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/redis"
	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/Badsnus/cu-clubs-web/pkg/logger"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/gomail.v2"
	tele "gopkg.in/telebot.v3"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	*gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
	Logger     *types.Logger
}

func New(config *config.Config) (*App, error) {
	webLogger, err := logger.Named("web")
	if err != nil {
		return nil, err
	}

	if !viper.GetBool("settings.debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	return &App{
		Engine:     gin.New(),
		DB:         config.Database,
		Redis:      config.Redis,
		SMTPDialer: config.SMTPDialer,
		Logger:     webLogger,
	}, nil
}

func (a *App) Start() {
	if viper.GetBool("settings.logging.log-to-channel") {
		a.setupLogChannel()
	}

	server := &http.Server{
		Addr:              viper.GetString("web.addr"),
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Web server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("Web server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down web server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Failed to shut down web server: %v", err)
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Errorf("Failed to close redis: %v", err)
	}
	if db, err := a.DB.DB(); err == nil {
		_ = db.Close()
	}
	_ = logger.Log.Sync()
}

func (a *App) setupLogChannel() {
	notifyLogger, err := logger.Named("notify")
	if err != nil {
		logger.Log.Errorf("Failed to create notify logger: %v", err)
		return
	}

	bot, err := tele.NewBot(tele.Settings{Token: viper.GetString("bot.token")})
	if err != nil {
		logger.Log.Errorf("Failed to create telegram bot: %v", err)
		return
	}

	notifyService := service.NewNotifyService(bot, notifyLogger)
	logHook, err := notifyService.LogHook(
		viper.GetInt64("settings.logging.channel-id"),
		zapcore.Level(viper.GetInt("settings.logging.channel-log-level")),
	)
	if err != nil {
		logger.Log.Errorf("Failed to create notify log hook: %v", err)
		return
	}
	logger.SetLogHook(logHook)
}
