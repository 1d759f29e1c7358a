/*
Package cmd 组装并运行论坛服务
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"forum/api"
	"forum/config"
	"forum/domain/shared"
	"forum/pkg/logger"
	"forum/pkg/tracing"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用程序
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	events *shared.DomainEvents
	db     *gorm.DB

	nats    *nats.Conn
	tracing tracing.ShutdownFunc
}

// Run 启动 HTTP 服务，ctx 取消后优雅关闭
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	return a.Shutdown(shutdownCtx)
}

// Shutdown 关闭 HTTP 服务和数据库连接
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("database close: %w", err))
			}
		}
	}

	if a.nats != nil {
		// Drain 会等待缓冲中的事件发出
		if err := a.nats.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("nats drain: %w", err))
		}
	}

	if a.tracing != nil {
		if err := a.tracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
	}

	a.events.ClearMarkedAggregates()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// Handler 返回 HTTP 处理器（测试使用）
func (a *App) Handler() http.Handler {
	return a.router.GetEngine()
}

// Events 返回本应用的事件调度器
func (a *App) Events() *shared.DomainEvents {
	return a.events
}
