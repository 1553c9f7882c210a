// Package logging builds the zap logger shared by trainerdex binaries.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trainerdex/internal/config"
)

// New builds a logger from cfg. Unknown levels fall back to info; any format
// other than "json" gets the console encoder.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg := buildConfig(cfg)
	return zapCfg.Build()
}

func buildConfig(cfg config.LoggingConfig) zap.Config {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg
}
