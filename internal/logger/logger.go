// Package logger wraps zap with optional lumberjack file rotation.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"worklines-api/internal/config"
)

var global = zap.NewNop().Sugar()

// L returns the process-wide sugared logger. Before Init it is a no-op.
func L() *zap.SugaredLogger {
	return global
}

// Init builds the global logger from config. Output "file" rotates through
// lumberjack; anything else writes to stdout/stderr.
func Init(cfg config.LogConfig) {
	level := zapcore.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var sink zapcore.WriteSyncer
	switch cfg.Output {
	case "file":
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	case "stderr":
		sink = zapcore.AddSync(os.Stderr)
	default:
		sink = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
	global = zap.New(core, zap.AddCaller()).Sugar()
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = global.Sync()
}
