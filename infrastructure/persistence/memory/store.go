/*
Package memory 内存仓储实现

用于测试和本地运行。每个仓储以 map 按标识保存聚合，另维护插入顺序；
写入成功并释放锁之后才调度事件，订阅者可以再调用仓储。
*/
package memory

import (
	"sync"

	"forum/domain/shared"
)

// store 按标识保存聚合并保留插入顺序
type store[T shared.Aggregate] struct {
	mu    sync.RWMutex
	items map[shared.UniqueEntityID]T
	order []shared.UniqueEntityID
}

func newStore[T shared.Aggregate]() *store[T] {
	return &store[T]{items: make(map[shared.UniqueEntityID]T)}
}

// insert 调用方持有写锁；标识已存在时返回 false
func (s *store[T]) insert(item T) bool {
	if _, exists := s.items[item.ID()]; exists {
		return false
	}
	s.items[item.ID()] = item
	s.order = append(s.order, item.ID())
	return true
}

// replace 调用方持有写锁；原位替换，插入顺序不变
func (s *store[T]) replace(item T) bool {
	if _, exists := s.items[item.ID()]; !exists {
		return false
	}
	s.items[item.ID()] = item
	return true
}

// remove 调用方持有写锁
func (s *store[T]) remove(id shared.UniqueEntityID) bool {
	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *store[T]) get(id shared.UniqueEntityID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

func (s *store[T]) exists(id shared.UniqueEntityID) bool {
	_, ok := s.get(id)
	return ok
}

// all 按插入顺序返回快照
func (s *store[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.items[id])
	}
	return result
}

func (s *store[T]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// page 取第 params.Page 页，超出范围返回空切片
func page[T any](items []T, params shared.PaginationParams) []T {
	start, end, ok := params.Bounds(len(items))
	if !ok {
		return []T{}
	}
	result := make([]T, end-start)
	copy(result, items[start:end])
	return result
}
