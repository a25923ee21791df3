// Package logger builds the zap loggers the binaries and the gin/gorm
// adapters in this package share.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects how log lines are rendered and where they go.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout or stderr
	TimeFormat string // layout passed to zapcore.TimeEncoderOfLayout
}

// New builds a logger from cfg. Unrecognized values fall back to an
// info-level console logger on stdout rather than failing startup.
func New(cfg *Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg.Encoding = "json"
		zapCfg.EncoderConfig.TimeKey = "time"
		zapCfg.EncoderConfig.MessageKey = "msg"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	if cfg.TimeFormat != "" {
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	}
	zapCfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder

	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zapCfg.OutputPaths = []string{sink(cfg.Output)}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.Sampling = nil

	return zapCfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func sink(output string) string {
	if strings.EqualFold(output, "stderr") {
		return "stderr"
	}
	return "stdout"
}

// Sync flushes any buffered log entries
func Sync(logger *zap.Logger) error {
	return logger.Sync()
}
