package gormdb

import (
	"context"

	"forum/domain/shared"
	"forum/infrastructure/persistence"
	"forum/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork implements the Unit of Work pattern with GORM
// 仓储写入共享同一个事务，提交之后才调度这些写入登记的领域事件
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		retryConfig: retryConfig,
	}
}

// Execute runs the business logic inside a database transaction
//  1. Begins a transaction and injects it into the context for repositories
//  2. Repositories queue their aggregates for dispatch instead of dispatching
//  3. Commits on success; rolls back and unmarks the queued aggregates on error
//  4. Dispatches the queued aggregates after commit
//
// 可重试的错误（死锁、锁超时）会整体重试；已在外层工作单元中时直接加入外层事务
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		workCtx, queue := persistence.ContextWithDispatchQueue(ctx)

		err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(persistence.ContextWithTx(workCtx, tx))
		})
		if err != nil {
			queue.Discard()
			return err
		}

		return queue.Flush(ctx)
	})
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
