package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/novatidelabs/synkpay-banking-service/internal/config"
)

func New(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "json"
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	outputs, err := outputPaths(cfg)
	if err != nil {
		return nil, err
	}
	zcfg.OutputPaths = outputs
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}

func outputPaths(cfg config.LogConfig) ([]string, error) {
	var paths []string
	if cfg.ToConsole {
		paths = append(paths, "stderr")
	}
	if cfg.ToFile {
		path := strings.TrimSpace(cfg.FilePath)
		if path == "" {
			return nil, fmt.Errorf("log file path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		paths = append(paths, path)
	}
	// Fall back to stderr when every sink is off.
	if len(paths) == 0 {
		paths = append(paths, "stderr")
	}
	return paths, nil
}
