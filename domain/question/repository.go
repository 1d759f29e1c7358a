package question

import (
	"context"

	"forum/domain/shared"
)

// Repository Question repository interface
// create/save/delete 在写入成功后必须按聚合 ID 触发事件调度；
// delete 先级联删除提问的附件，再删除提问本身
type Repository interface {
	Create(ctx context.Context, question *Question) error

	// Save 整体替换已存在的提问，不存在时返回 shared.ErrNotFound
	Save(ctx context.Context, question *Question) error

	// Delete 不存在时返回 shared.ErrNotFound，级联失败返回 shared.ErrCascadeFailure
	Delete(ctx context.Context, question *Question) error

	// FindByID 未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id shared.UniqueEntityID) (*Question, error)

	// FindBySlug 未找到时返回 (nil, nil)
	FindBySlug(ctx context.Context, slug string) (*Question, error)

	// FindManyRecent 按创建时间倒序分页
	FindManyRecent(ctx context.Context, params shared.PaginationParams) ([]*Question, error)
}
