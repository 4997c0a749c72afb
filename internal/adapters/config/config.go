package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	postgresStorage "github.com/Badsnus/cu-clubs-web/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/redis"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/pkg/logger"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Config struct {
	Database   *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
}

func setDefaults() {
	viper.SetDefault("settings.debug", false)
	viper.SetDefault("settings.timezone", "UTC")
	viper.SetDefault("settings.logs-dir", "logs")
	viper.SetDefault("settings.logging.channel-log-level", 1)

	viper.SetDefault("service.database.host", "localhost")
	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.database.sslmode", "disable")
	viper.SetDefault("service.redis.host", "localhost")
	viper.SetDefault("service.redis.port", "6379")
	viper.SetDefault("service.smtp.port", 587)

	viper.SetDefault("web.addr", ":8080")
	viper.SetDefault("web.session-ttl", 24*time.Hour)
	viper.SetDefault("web.cookie-secure", false)
	viper.SetDefault("web.upload-dir", "uploads")
	viper.SetDefault("web.max-upload-size", 5<<20)
	viper.SetDefault("web.report-cache-ttl", 10*time.Minute)
	viper.SetDefault("web.base-url", "http://localhost:8080")
}

// Load reads the configuration file at path into viper. Every key can be
// overridden by an environment variable, "service.database.host" is read from
// SERVICE_DATABASE_HOST.
func Load(path string) error {
	setDefaults()
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if viper.GetString("web.jwt-secret") == "" {
		return fmt.Errorf("web.jwt-secret is required")
	}
	return nil
}

func configPath() string {
	if path := os.Getenv("CLUBS_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// DSN builds the postgres connection string from service.database.*.
func DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s TimeZone=UTC",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
	)
}

func Get() *Config {
	if err := Load(configPath()); err != nil {
		panic(err)
	}

	if err := location.Init(viper.GetString("settings.timezone")); err != nil {
		panic(err)
	}

	err := logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	gormConfig := &gorm.Config{TranslateError: true}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	database, err := gorm.Open(postgres.Open(DSN()), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	}
	logger.Log.Info("Successfully connected to the database")

	if err = database.AutoMigrate(postgresStorage.Migrations...); err != nil {
		logger.Log.Panicf("Failed to migrate database: %v", err)
	}

	redisClient, err := redis.New(redis.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	}
	logger.Log.Info("Successfully connected to redis")

	return &Config{
		Database: database,
		Redis:    redisClient,
		SMTPDialer: gomail.NewDialer(
			viper.GetString("service.smtp.host"),
			viper.GetInt("service.smtp.port"),
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.password"),
		),
	}
}
