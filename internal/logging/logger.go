// Package logging wraps zap with the small surface the rest of the code uses.
package logging

import (
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger provides leveled logging and lightweight timing helpers.
// The zero value discards everything.
type Logger struct {
	Verbose bool
	sugar   *zap.SugaredLogger
}

// New builds a logger writing to writer. Verbose enables debug output.
// Unknown formats fall back to console.
func New(writer io.Writer, verbose bool, format string) Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(format, FormatJSON) {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(writer), level)
	return Logger{
		Verbose: verbose,
		sugar:   zap.New(core).Sugar(),
	}
}

// With returns a logger that adds the given key/value pairs to every entry.
func (l Logger) With(keysAndValues ...any) Logger {
	if l.sugar == nil {
		return l
	}
	l.sugar = l.sugar.With(keysAndValues...)
	return l
}

func (l Logger) Infof(format string, args ...any) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

func (l Logger) Errorf(format string, args ...any) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if l.sugar == nil || !l.Verbose {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}

// Sync flushes buffered entries.
func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
