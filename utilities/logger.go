package utilities

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logMutex sync.RWMutex
	sugar    = zap.NewNop().Sugar()
	base     = zap.NewNop()
)

// LogOptions configures the rotated log files.
type LogOptions struct {
	Dir        string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SetupLogging writes info, warn and error records to their own rotated
// files under opts.Dir and mirrors everything to the console.
func SetupLogging(opts LogOptions) error {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	minLevel := zapcore.InfoLevel
	if err := minLevel.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
		minLevel = zapcore.InfoLevel
	}

	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleCfg)

	rotate := func(name string) zapcore.WriteSyncer {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, name),
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}
	only := func(l zapcore.Level) zap.LevelEnablerFunc {
		return func(lvl zapcore.Level) bool { return lvl == l && lvl >= minLevel }
	}

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, rotate("info.log"), only(zapcore.InfoLevel)),
		zapcore.NewCore(fileEncoder, rotate("warn.log"), only(zapcore.WarnLevel)),
		zapcore.NewCore(fileEncoder, rotate("error.log"), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.ErrorLevel
		})),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), minLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
	SetLogger(logger)
	return nil
}

// SetLogger replaces the package logger. Tests use it with zaptest or
// observer cores.
func SetLogger(l *zap.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	base = l
	sugar = l.Sugar()
}

// Logger returns the structured logger for callers that want fields.
func Logger() *zap.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return base.WithOptions(zap.AddCallerSkip(-2))
}

// Sync flushes buffered records.
func Sync() {
	logMutex.RLock()
	defer logMutex.RUnlock()
	_ = sugar.Sync()
}

func Log(level string, format string, v ...interface{}) {
	logMutex.RLock()
	defer logMutex.RUnlock()

	switch level {
	case "DEBUG":
		sugar.Debugf(format, v...)
	case "WARNING":
		sugar.Warnf(format, v...)
	case "ERROR":
		sugar.Errorf(format, v...)
	default:
		sugar.Infof(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	Log("DEBUG", format, v...)
}
func Info(format string, v ...interface{}) {
	Log("INFO", format, v...)
}
func Warn(format string, v ...interface{}) {
	Log("WARNING", format, v...)
}
func Error(format string, v ...interface{}) {
	Log("ERROR", format, v...)
}
