package shared

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DomainEvent 领域事件：聚合 X 在时刻 T 发生了某件事
// EventName 是事件类型的判别值，具体载荷由各事件类型的字段提供
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() UniqueEntityID
}

// EventHandler 事件订阅者
// Name 用于去重：同一事件类型下同名订阅者只注册一次
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	Name() string
}

// DomainEvents 领域事件调度器（进程内事件总线）
//
// 由组合根显式创建并注入仓储，不使用包级全局状态；测试中每个用例可以持有独立实例。
//
// 投递语义：至多一次、非原子。
//   - 调度开始时对聚合的事件队列做快照并立即从队列中移除，随后依次调用订阅者
//   - 某个订阅者返回错误时立即中止本轮调度，剩余订阅者不再调用，已调用的不回滚
//   - 快照中的事件在失败后不会重新投递
//
// 登记按实例记录：并发请求各自加载的同一 ID 聚合互不覆盖，
// 仓储和工作单元通过 DispatchAggregate / UnmarkAggregateInstance 只处理自己写入的实例。
type DomainEvents struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	marked   map[UniqueEntityID][]Aggregate
}

// NewDomainEvents 创建调度器
func NewDomainEvents() *DomainEvents {
	return &DomainEvents{
		handlers: make(map[string][]EventHandler),
		marked:   make(map[UniqueEntityID][]Aggregate),
	}
}

// Register 为事件类型注册订阅者，重复注册同名订阅者是空操作
func (d *DomainEvents) Register(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range d.handlers[eventName] {
		if h.Name() == handler.Name() {
			return nil
		}
	}

	d.handlers[eventName] = append(d.handlers[eventName], handler)
	return nil
}

// Unregister 取消订阅
func (d *DomainEvents) Unregister(eventName string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers := d.handlers[eventName]
	for i, h := range handlers {
		if h.Name() == handler.Name() {
			d.handlers[eventName] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// MarkAggregateForDispatch 登记聚合实例，重复登记同一实例是空操作
// 仓储在 create/save/delete 提交之前调用；这里只保存引用，不拥有聚合
func (d *DomainEvents) MarkAggregateForDispatch(aggregate Aggregate) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := aggregate.ID()
	for _, m := range d.marked[id] {
		if m == aggregate {
			return
		}
	}
	d.marked[id] = append(d.marked[id], aggregate)
}

// UnmarkAggregate 撤销该 ID 下的全部登记，聚合的事件队列保持不变
func (d *DomainEvents) UnmarkAggregate(id UniqueEntityID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.marked, id)
}

// UnmarkAggregateInstance 写入失败或回滚时只撤销这个实例的登记
func (d *DomainEvents) UnmarkAggregateInstance(aggregate Aggregate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeLocked(aggregate)
}

// IsMarked 该 ID 下是否有待调度的实例
func (d *DomainEvents) IsMarked(id UniqueEntityID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.marked[id]) > 0
}

// DispatchEventsForAggregate 按登记顺序调度该 ID 下所有实例排队的事件
// 未登记的 id 是空操作；订阅者失败时返回 ErrSubscriberFailure，
// 其余实例的登记同样被移除，事件留在各自队列中
func (d *DomainEvents) DispatchEventsForAggregate(ctx context.Context, id UniqueEntityID) error {
	d.mu.Lock()
	instances := d.marked[id]
	delete(d.marked, id)
	d.mu.Unlock()

	for _, aggregate := range instances {
		if err := d.dispatch(ctx, aggregate); err != nil {
			return err
		}
	}
	return nil
}

// DispatchAggregate 只调度这个实例；实例未登记时是空操作
func (d *DomainEvents) DispatchAggregate(ctx context.Context, aggregate Aggregate) error {
	d.mu.Lock()
	ok := d.removeLocked(aggregate)
	d.mu.Unlock()

	if !ok {
		return nil
	}
	return d.dispatch(ctx, aggregate)
}

func (d *DomainEvents) dispatch(ctx context.Context, aggregate Aggregate) error {
	events := aggregate.DomainEvents()
	aggregate.drainDomainEvents(len(events))

	for _, event := range events {
		for _, handler := range d.handlersFor(event.EventName()) {
			if err := handler.Handle(ctx, event); err != nil {
				return NewSubscriberFailureError(event.EventName(), handler.Name(), err)
			}
		}
	}

	return nil
}

// removeLocked 调用方持有写锁
func (d *DomainEvents) removeLocked(aggregate Aggregate) bool {
	id := aggregate.ID()
	instances := d.marked[id]
	for i, m := range instances {
		if m != aggregate {
			continue
		}
		if len(instances) == 1 {
			delete(d.marked, id)
		} else {
			d.marked[id] = append(instances[:i:i], instances[i+1:]...)
		}
		return true
	}
	return false
}

func (d *DomainEvents) handlersFor(eventName string) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	handlers := make([]EventHandler, len(d.handlers[eventName]))
	copy(handlers, d.handlers[eventName])
	return handlers
}

// ClearSubscriptions 清空所有订阅者（仅用于测试），不影响已登记的聚合
func (d *DomainEvents) ClearSubscriptions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = make(map[string][]EventHandler)
}

// ClearMarkedAggregates 清空已登记的聚合（仅用于测试）
func (d *DomainEvents) ClearMarkedAggregates() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.marked = make(map[UniqueEntityID][]Aggregate)
}

// FuncHandler 以函数形式实现 EventHandler
type FuncHandler struct {
	name string
	fn   func(context.Context, DomainEvent) error
}

// NewFuncHandler 创建函数订阅者
func NewFuncHandler(name string, fn func(context.Context, DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{
		name: name,
		fn:   fn,
	}
}

func (h *FuncHandler) Handle(ctx context.Context, event DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *FuncHandler) Name() string {
	return h.name
}
