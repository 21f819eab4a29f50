package logging

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// All loggers are no-ops until InitLogger runs.
var (
	AppLogger     = zap.NewNop()
	RequestLogger = zap.NewNop()
	TimerLogger   = zap.NewNop()
	ErrorLogger   = zap.NewNop()
)

// InitLogger points every logger at its rotating file under dir.
// app.log also receives warnings and errors so it reads as a full timeline.
func InitLogger(dir string) error {
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	fileCore := func(name string, maxSize, maxAge int, level zapcore.Level) zapcore.Core {
		return zapcore.NewCore(encoder,
			zapcore.AddSync(&lumberjack.Logger{
				Filename: filepath.Join(dir, name), MaxSize: maxSize, MaxAge: maxAge, Compress: true,
			}),
			level,
		)
	}

	errorCore := fileCore("error.log", 100, 30, zap.ErrorLevel)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), zap.InfoLevel)

	AppLogger = zap.New(zapcore.NewTee(fileCore("app.log", 100, 28, zap.InfoLevel), consoleCore))
	RequestLogger = zap.New(fileCore("request.log", 50, 7, zap.InfoLevel))
	TimerLogger = zap.New(fileCore("timer.log", 50, 7, zap.InfoLevel))
	ErrorLogger = zap.New(zapcore.NewTee(errorCore, consoleCore), zap.AddCaller())
	return nil
}

// Sync flushes buffered entries; call it on shutdown.
func Sync() {
	for _, l := range []*zap.Logger{AppLogger, RequestLogger, TimerLogger, ErrorLogger} {
		_ = l.Sync()
	}
}

// LogDuration lets you do: defer logging.LogDuration(ctx, "FuncName")()
func LogDuration(ctx context.Context, name string) func() {
	start := time.Now()
	requestID := middleware.GetReqID(ctx)

	return func() {
		fields := []zap.Field{
			zap.String("func", name),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		TimerLogger.Info("Function timed", fields...)
	}
}

// RequestMiddleware writes one request.log entry per HTTP request.
func RequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			RequestLogger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
