// Package logger builds the zap loggers of the command-line tool.
package logger

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger that writes to w entries at level or above,
// encoded in format.
// Valid levels are debug, info, warn, and error;
// valid formats are json and console.
func New(w io.Writer, level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch l := strings.ToLower(level); l {
	case "debug", "info", "warn", "error":
		if err := lvl.Set(l); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "json":
		enc = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
