package persistence

import (
	"context"
	"errors"
	"sync"

	"forum/domain/shared"

	"gorm.io/gorm"
)

// txKey is the context key for storing the transaction
type txKey struct{}

// dispatchKey is the context key for storing the pending dispatch queue
type dispatchKey struct{}

// requestIDKey is the context key for the HTTP request id
type requestIDKey struct{}

// TxFromContext retrieves the GORM transaction from context
// Returns nil if no transaction is present
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx returns a new context with the GORM transaction attached
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// ContextWithRequestID attaches the request id used for log correlation
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns "" when no request id is present
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// DispatchQueue collects the aggregates written inside a unit of work
// Their events are dispatched only after the unit of work commits
type DispatchQueue struct {
	mu      sync.Mutex
	pending []pendingDispatch
}

type pendingDispatch struct {
	events    *shared.DomainEvents
	aggregate shared.Aggregate
}

// ContextWithDispatchQueue returns a new context carrying an empty dispatch queue
func ContextWithDispatchQueue(ctx context.Context) (context.Context, *DispatchQueue) {
	q := &DispatchQueue{}
	return context.WithValue(ctx, dispatchKey{}, q), q
}

// DispatchQueueFromContext returns nil when the context is not inside a unit of work
func DispatchQueueFromContext(ctx context.Context) *DispatchQueue {
	if q, ok := ctx.Value(dispatchKey{}).(*DispatchQueue); ok {
		return q
	}
	return nil
}

// DispatchAfterCommit 仓储写入成功后调用
// 在工作单元内：登记到队列，提交后统一调度；否则立即调度
// 队列持有聚合实例本身，同一 ID 的其他实例（其他请求加载的）不受影响
func DispatchAfterCommit(ctx context.Context, events *shared.DomainEvents, aggregate shared.Aggregate) error {
	if q := DispatchQueueFromContext(ctx); q != nil {
		q.add(events, aggregate)
		return nil
	}
	return events.DispatchAggregate(ctx, aggregate)
}

func (q *DispatchQueue) add(events *shared.DomainEvents, aggregate shared.Aggregate) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, pendingDispatch{events: events, aggregate: aggregate})
}

func (q *DispatchQueue) take() []pendingDispatch {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.pending
	q.pending = nil
	return pending
}

// Len 待调度的聚合数量
func (q *DispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush 提交后按写入顺序调度
// 单个聚合的调度失败不影响其他聚合，所有失败合并返回
func (q *DispatchQueue) Flush(ctx context.Context) error {
	var errs []error
	for _, p := range q.take() {
		if err := p.events.DispatchAggregate(ctx, p.aggregate); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard 回滚时撤销登记，聚合的事件队列保持不变
func (q *DispatchQueue) Discard() {
	for _, p := range q.take() {
		p.events.UnmarkAggregateInstance(p.aggregate)
	}
}
