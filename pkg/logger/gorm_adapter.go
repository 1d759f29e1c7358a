package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold 未配置 database.slow_threshold 时使用
const DefaultSlowThreshold = 200 * time.Millisecond

// GormLogger 把 GORM 日志写入 zap
//
// 包级 logger 在每次写日志时读取，连接建立之后再 Set 的 logger 同样生效。
// 仓储把"未找到"视为 nil 结果而不是错误，所以 ErrRecordNotFound 不记录。
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &GormLogger{level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormLogger{level: level, slowThreshold: l.slowThreshold}
}

func (l *GormLogger) logger(ctx context.Context) *zap.Logger {
	return ForContext(ctx).Named("gorm")
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := elapsed > l.slowThreshold

	switch {
	case failed && l.level >= gormlogger.Error:
	case slow && l.level >= gormlogger.Warn:
	case l.level >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("op", sqlOperation(sql)),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	log := l.logger(ctx)

	switch {
	case failed:
		log.Error("Database operation failed", append(fields, zap.Error(err))...)
	case slow:
		log.Warn("Slow SQL query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	default:
		log.Info("SQL query executed", fields...)
	}
}

// sqlOperation 语句的第一个关键字，小写
func sqlOperation(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \t\n"); i > 0 {
		sql = sql[:i]
	}
	return strings.ToLower(sql)
}

var _ gormlogger.Interface = (*GormLogger)(nil)
