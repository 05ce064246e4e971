// Package logger configures the process-wide zap logger.
package logger

import (
	"github.com/pingcap/errors"
	pclog "github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	appLogger = zap.NewNop()
	appLevel  = zap.NewAtomicLevel()
)

// Config holds the logger settings.
type Config struct {
	// One of "debug", "info", "warn" and "error".
	Level string
	// One of "text", "json" or "console".
	Format string
	// Log file name; empty logs to stderr.
	File string
}

// Init builds the logger from cfg and installs it as the global logger.
func Init(cfg Config) (*zap.Logger, error) {
	logger, props, err := pclog.InitLogger(&pclog.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		File:   pclog.FileLogConfig{Filename: cfg.File},
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	pclog.ReplaceGlobals(logger, props)
	appLogger = logger
	appLevel = props.Level
	return logger, nil
}

// L returns the logger installed by Init, or a no-op logger.
func L() *zap.Logger {
	return appLogger
}

// SetLevel changes the level of the logger installed by Init.
func SetLevel(level zapcore.Level) {
	appLevel.SetLevel(level)
}
