package shared

import "sync"

// Aggregate 可被 DomainEvents 调度的聚合根
// 聚合根是DDD的核心概念，它是聚合的入口点，维护聚合的一致性边界
// 特性：
// 1. 有全局唯一标识
// 2. 所有修改必须通过聚合根进行
// 3. 负责记录领域事件，由仓储在持久化成功后触发调度
//
// drainDomainEvents 是未导出方法：只有嵌入 *AggregateRoot 的类型才能实现该接口，
// 事件队列也只能由本包内的调度器清空
type Aggregate interface {
	ID() UniqueEntityID
	DomainEvents() []DomainEvent
	drainDomainEvents(n int)
}

// Entity 实体接口
// 实体与值对象的区别：
// 1. 实体有唯一标识（ID）
// 2. 通过标识判断相等性（即使属性相同，ID不同就是不同的实体）
type Entity interface {
	ID() UniqueEntityID
}

// AggregateRoot 聚合根基类，由具体聚合以指针形式嵌入
// 持有标识与未提交的领域事件队列（按发生顺序）
type AggregateRoot struct {
	id UniqueEntityID

	mu     sync.Mutex
	events []DomainEvent
}

// NewAggregateRoot 创建聚合根基类
// id 为空表示新聚合，生成新的标识；否则视为从存储重建，沿用原标识
func NewAggregateRoot(id UniqueEntityID) *AggregateRoot {
	if id.IsZero() {
		id = NewUniqueEntityID()
	}
	return &AggregateRoot{id: id}
}

// ID 返回聚合根的全局唯一标识
func (a *AggregateRoot) ID() UniqueEntityID {
	return a.id
}

// AddDomainEvent 记录领域事件
// 注意：Go 无法限制只有聚合自身调用，约定只在聚合的行为方法内部使用
func (a *AggregateRoot) AddDomainEvent(event DomainEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

// DomainEvents 返回待调度事件的副本，不修改队列
func (a *AggregateRoot) DomainEvents() []DomainEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	events := make([]DomainEvent, len(a.events))
	copy(events, a.events)
	return events
}

// drainDomainEvents 移除队首 n 个事件（即本轮调度快照中的事件）
// 调度过程中新追加的事件保留到下一轮
func (a *AggregateRoot) drainDomainEvents(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n >= len(a.events) {
		a.events = nil
		return
	}
	remaining := make([]DomainEvent, len(a.events)-n)
	copy(remaining, a.events[n:])
	a.events = remaining
}

// 编译时检查 AggregateRoot 实现了 Aggregate 接口
var _ Aggregate = (*AggregateRoot)(nil)
