package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/telemetry"
)

// LoggingConfig configures logging wiring.
type LoggingConfig struct {
	Logger      *zap.Logger
	Broadcaster *telemetry.LogBroadcaster
	Level       string
}

// Logging bundles the logger and broadcaster.
type Logging struct {
	Logger      *zap.Logger
	Broadcaster *telemetry.LogBroadcaster
}

// NewBaseLogger builds a JSON logger on stderr, which keeps stdout free for
// the stdio transport.
func NewBaseLogger(level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// NewLogging constructs logging dependencies. Entries at or above the level
// are also fanned out to connected clients as log notifications.
func NewLogging(cfg LoggingConfig) (Logging, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceCore))

	if cfg.Broadcaster != nil {
		return Logging{Logger: logger, Broadcaster: cfg.Broadcaster}, nil
	}

	level := zapcore.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := parseLevel(cfg.Level)
		if err != nil {
			return Logging{}, err
		}
		level = parsed
	}
	logs := telemetry.NewLogBroadcaster(level)
	logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, logs.Core())
	}))

	return Logging{Logger: logger, Broadcaster: logs}, nil
}

// NewLogger returns the logger from a Logging bundle.
func NewLogger(logging Logging) *zap.Logger {
	return logging.Logger
}

// NewLogBroadcaster returns the broadcaster from a Logging bundle.
func NewLogBroadcaster(logging Logging) *telemetry.LogBroadcaster {
	return logging.Broadcaster
}

func parseLevel(raw string) (zapcore.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = domain.DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(strings.ToLower(value))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}
