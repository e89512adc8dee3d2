package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// Get builds the process logger on first use and returns it on every call.
// LOG_LEVEL sets the level and a non-empty JSON_LOG switches to the json encoder.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		logger = zap.New(newCore(os.Getenv("LOG_LEVEL"), os.Getenv("JSON_LOG") != "")).Sugar()
	})

	return logger
}

func newCore(levelName string, isJSON bool) zapcore.Core {
	level := zap.InfoLevel
	if levelName != "" {
		parsed, err := zapcore.ParseLevel(levelName)
		if err != nil {
			log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
		} else {
			level = parsed
		}
	}

	encoder := zapcore.NewConsoleEncoder(developmentEncoderConfig())
	if isJSON {
		encoder = zapcore.NewJSONEncoder(productionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))
	return core.With(buildFields())
}

func productionEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func developmentEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func buildFields() []zapcore.Field {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	fields := []zapcore.Field{zap.String("go_version", buildInfo.GoVersion)}
	for _, setting := range buildInfo.Settings {
		if setting.Key != "vcs.revision" {
			continue
		}

		revision := setting.Value
		if len(revision) > 7 {
			revision = revision[:7]
		}
		fields = append(fields, zap.String("git_revision", revision))
		break
	}

	return fields
}

// FromCtx returns the logger stored on ctx, falling back to the process logger.
// Any extra key/value pairs are added to the returned logger.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}

	return l.With(with...)
}

// WithCtx returns a copy of ctx carrying l.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if existing, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && existing == l {
		return ctx
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
