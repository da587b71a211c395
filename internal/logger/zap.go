package logger

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger so callers log with key/value pairs (Infow, Errorw).
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel applies when log.level is empty or unknown.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newJSONCore writes structured JSON lines to w.
func newJSONCore(level zapcore.Level, w io.Writer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	encoder := zapcore.NewJSONEncoder(cfg)
	ws := zapcore.Lock(zapcore.AddSync(w))
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}

func newZapLogger(levelStr string, w io.Writer) *Logger {
	core := newJSONCore(toZapLevel(levelStr), w)
	return &Logger{
		SugaredLogger: zap.New(core, zap.AddCaller()).Sugar().With("service", "authsvc"),
	}
}

// New builds a standalone logger writing to w. Used where the singleton is not wanted.
func New(levelStr string, w io.Writer) *Logger {
	return newZapLogger(levelStr, w)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
