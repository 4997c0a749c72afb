package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log     *types.Logger
	logHook atomic.Value
)

// Config represents configuration options for logger initialization
type Config struct {
	Debug        bool           // Enable debug logging
	TimeLocation *time.Location // Location timestamps are rendered in (default: UTC)
	LogToFile    bool           // Enable logging to a file
	LogsDir      string         // Set the directory for logs (default: current working directory)
	Output       io.Writer      // Console output (default: stdout)
}

// SetLogHook sets a hook function that will be called for each log entry
func SetLogHook(hook types.LogHook) {
	logHook.Store(hook)
	if Log != nil {
		Log.Debug("Log hook set")
	}
}

func runHook(entry zapcore.Entry) error {
	hook, _ := logHook.Load().(types.LogHook)
	if hook != nil {
		hook(types.Log{
			Timestamp:  entry.Time,
			Caller:     entry.Caller.String(),
			LoggerName: entry.LoggerName,
			Level:      entry.Level,
			Message:    entry.Message,
		})
	}
	return nil
}

// Init is a function to initialize logger with extended configuration
func Init(config Config) error {
	var l types.Logger
	l.Name = "main"

	location := config.TimeLocation
	if location == nil {
		location = time.UTC
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.In(location).Format("2006-01-02 15:04:05"))
		},
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	// Console encoder with colors
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(output)), level),
	}

	if config.LogToFile {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		l.LogsPath = wd
		if config.LogsDir != "" {
			l.LogsPath = filepath.Join(wd, config.LogsDir)
		}
		if err = os.MkdirAll(l.LogsPath, os.ModePerm); err != nil {
			return err
		}

		// File encoder without colors
		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		mainLogPath := filepath.Join(l.LogsPath, fmt.Sprintf("%s.log", time.Now().In(location).Format("2006-01-02_15-04")))
		fileWriter, err := os.OpenFile(mainLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(fileWriter), level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.Hooks(runHook))

	l.SugaredLogger = log.Named(l.Name).Sugar()
	Log = &l

	return nil
}

// Named returns a new logger with the specified name ("http", "database", etc.)
func Named(name string) (*types.Logger, error) {
	if Log == nil {
		return nil, fmt.Errorf("logger is not initialized")
	}
	return &types.Logger{
		SugaredLogger: Log.SugaredLogger.Named(name),
		LogsPath:      Log.LogsPath,
		Name:          name,
	}, nil
}

// Nop returns a logger that discards everything, for tests and tools.
func Nop() *types.Logger {
	return &types.Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		Name:          "nop",
	}
}
