package shared

import "context"

// UnitOfWork 工作单元
// Execute 内的仓储写入共享同一个事务；提交成功后才调度这些写入登记的领域事件，
// 回滚时不调度，聚合的事件队列保持不变
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
