// Package logger wraps zap's sugared logger with key/value helpers.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	s *zap.SugaredLogger
}

// New logs to stderr. "prod"/"production" writes JSON at info level; any other
// mode writes the console format at debug level.
func New(mode string) (*Logger, error) {
	return NewTo(os.Stderr, mode), nil
}

// NewTo is New with an explicit sink.
func NewTo(w io.Writer, mode string) *Logger {
	var (
		enc   zapcore.Encoder
		level zapcore.Level
		opts  []zap.Option
	)
	if isProd(mode) {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zapcore.InfoLevel
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
		level = zapcore.DebugLevel
		opts = append(opts, zap.Development())
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return &Logger{s: zap.New(core, opts...).Sugar()}
}

func isProd(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		return true
	}
	return false
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() { _ = l.s.Sync() }

func (l *Logger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }
func (l *Logger) Fatal(msg string, kv ...any) { l.s.Fatalw(msg, kv...) }

// With returns a child logger that adds kv to every entry.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{s: l.s.With(kv...)}
}
