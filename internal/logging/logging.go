// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a console logger writing to w at the given level
// ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func parseLevel(level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	var parsed zapcore.Level
	if err := parsed.Set(level); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zap.NewAtomicLevelAt(parsed), nil
}
