package memory

import (
	"context"
	"errors"

	"forum/domain/shared"
	"forum/infrastructure/persistence"
)

// UnitOfWork 内存工作单元
// 没有真正的事务：已完成的写入不会回滚，所以 fn 失败时这些写入的事件照常调度，
// 失败的那次写入由仓储自己撤销登记
// 嵌套调用加入外层工作单元
type UnitOfWork struct{}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.DispatchQueueFromContext(ctx) != nil {
		return fn(ctx)
	}

	workCtx, queue := persistence.ContextWithDispatchQueue(ctx)

	// 订阅者在工作单元之外运行，它们触发的写入立即调度
	if err := fn(workCtx); err != nil {
		if flushErr := queue.Flush(ctx); flushErr != nil {
			return errors.Join(err, flushErr)
		}
		return err
	}

	return queue.Flush(ctx)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
