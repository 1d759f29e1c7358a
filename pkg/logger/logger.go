/*
Package logger 论坛服务的结构化日志

包级 logger 在 Init 之前为 nil，辅助函数此时是空操作，Get 返回 Nop。
每条日志都带 service / version / env；ContextFields 从 context 中取出请求 ID 和链路 ID，
HTTP 访问日志、GORM 日志和领域事件日志用同一组字段关联到一次请求。
*/
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"forum/config"
	"forum/infrastructure/persistence"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger

// Init 按应用配置创建包级 logger
func Init(cfg *config.Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// New 构建 logger，不替换包级实例
func New(cfg *config.Config) (*zap.Logger, error) {
	sink, err := newSink(&cfg.Log)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(&cfg.Log, cfg.App.Env), sink, parseLevel(cfg.Log.Level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(serviceFields(&cfg.App)...), nil
}

func serviceFields(app *config.AppConfig) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if app.Name != "" {
		fields = append(fields, zap.String("service", app.Name))
	}
	if app.Version != "" {
		fields = append(fields, zap.String("version", app.Version))
	}
	if app.Env != "" {
		fields = append(fields, zap.String("env", app.Env))
	}
	return fields
}

// newEncoder format 显式指定时优先；未指定时开发环境用 console，其余用 json
func newEncoder(cfg *config.LogConfig, env string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder

	switch cfg.Format {
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	if env == "dev" || env == "development" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func newSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	switch cfg.Output {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSize, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAge, 7),
			Compress:   true,
		}), nil
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	default:
		return zapcore.Lock(os.Stdout), nil
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func parseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Get 返回包级 logger，未初始化时返回 Nop
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Set 替换包级 logger（测试中注入 observer）
func Set(l *zap.Logger) {
	log = l
}

// ContextFields 请求 ID 与链路信息，缺失的字段不输出
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()))
	}
	return fields
}

// ForContext 带上 ContextFields 的包级 logger
func ForContext(ctx context.Context) *zap.Logger {
	return Get().With(ContextFields(ctx)...)
}

// Sync 刷新缓冲；stdout/stderr 是终端或管道时 fsync 的报错忽略
func Sync() error {
	if log == nil {
		return nil
	}
	err := log.Sync()
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}

func Info(msg string, fields ...zap.Field) {
	if log != nil {
		log.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if log != nil {
		log.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if log != nil {
		log.Error(msg, fields...)
	}
}
