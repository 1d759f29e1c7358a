/*
Package retry 数据库瞬时错误的重试策略

只重试与数据无关的瞬时错误：MySQL 死锁(1213)、锁等待超时(1205)、SQLite 数据库被锁。
领域错误（未找到、冲突、级联失败、订阅者失败）永远不重试。
*/
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"forum/config"
	"forum/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	mysqlErrDeadlock    = 1213
	mysqlErrLockTimeout = 1205
)

type Config struct {
	Enabled            bool
	MaxAttempts        int
	InitialDelay       time.Duration
	MaxDelay           time.Duration
	BackoffFactor      float64
	JitterEnabled      bool
	RetryOnDeadlock    bool
	RetryOnLockTimeout bool
	RetryPredicate     func(error) bool
}

var DefaultConfig = Config{
	Enabled:            true,
	MaxAttempts:        3,
	InitialDelay:       100 * time.Millisecond,
	MaxDelay:           2 * time.Second,
	BackoffFactor:      2.0,
	JitterEnabled:      true,
	RetryOnDeadlock:    true,
	RetryOnLockTimeout: true,
}

func FromAppConfig(appConfig *config.Config) Config {
	retryConfig := appConfig.Database.Retry

	return Config{
		Enabled:            retryConfig.Enabled,
		MaxAttempts:        retryConfig.MaxAttempts,
		InitialDelay:       retryConfig.InitialDelay,
		MaxDelay:           retryConfig.MaxDelay,
		BackoffFactor:      retryConfig.BackoffFactor,
		JitterEnabled:      retryConfig.JitterEnabled,
		RetryOnDeadlock:    retryConfig.RetryOnDeadlock,
		RetryOnLockTimeout: retryConfig.RetryOnLockTimeout,
	}
}

// ExponentialBackoffWithJitter 第 attempt 次失败后的等待时间，抖动范围 ±20%
func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		jitterFactor := 0.8 + rand.Float64()*0.4
		delay = delay * jitterFactor
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return false
	}

	if config.RetryPredicate != nil && config.RetryPredicate(err) {
		return true
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDeadlock:
			return config.RetryOnDeadlock
		case mysqlErrLockTimeout:
			return config.RetryOnLockTimeout
		}
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "deadlock") && config.RetryOnDeadlock {
		return true
	}
	if (strings.Contains(errStr, "lock wait timeout") || strings.Contains(errStr, "database is locked")) && config.RetryOnLockTimeout {
		return true
	}
	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		(strings.Contains(errStr, "connection") && strings.Contains(errStr, "lost")) {
		return true
	}

	return false
}

// ExecuteWithRetry 执行 fn，遇到可重试错误时按指数退避重试
func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled || config.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		delay := ExponentialBackoffWithJitter(attempt, config)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}
