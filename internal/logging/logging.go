// Package logging builds the zap logger shared by every oficina component.
//
// Interactive runs log to stderr with a colored console encoder. When a log
// file is configured, records go to that file as JSON through a rotating
// writer instead, so the menu on the terminal stays clean.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLevel keeps routine messages off the interactive terminal.
const DefaultLevel = "warn"

// Config configures the logger.
type Config struct {
	// Level is the minimum level: "debug", "info", "warn" or "error".
	// Default: "warn"
	Level string

	// File, when set, sends JSON records to this path instead of stderr.
	File string

	// MaxSizeMB is the size at which File is rotated. Default: 10
	MaxSizeMB int

	// MaxBackups is how many rotated files are kept. Default: 3
	MaxBackups int

	// Console overrides stderr for console output. Used by tests.
	Console io.Writer
}

// New builds a logger from cfg. The returned close function flushes the
// logger and releases the log file; call it before the program exits.
func New(cfg Config) (*zap.Logger, func() error) {
	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
		}
		core := zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig()), zapcore.AddSync(rotator), level)
		l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		return l, func() error {
			_ = l.Sync()
			return rotator.Close()
		}
	}

	out := cfg.Console
	if out == nil {
		out = os.Stderr
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), zapcore.Lock(zapcore.AddSync(out)), level)
	l := zap.New(core)
	return l, func() error {
		// Sync on a terminal fd can fail with EINVAL; nothing is buffered anyway.
		_ = l.Sync()
		return nil
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	ec.CallerKey = zapcore.OmitKey
	return ec
}

func fileEncoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return ec
}

// ParseLevel converts a level name to a zapcore.Level. Unknown names fall
// back to DefaultLevel.
func ParseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ValidLevel reports whether lvl is one of the names ParseLevel knows.
func ValidLevel(lvl string) bool {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
