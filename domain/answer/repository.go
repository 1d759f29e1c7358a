package answer

import (
	"context"

	"forum/domain/shared"
)

// Repository Answer repository interface
// create/save/delete 在写入成功后必须按聚合 ID 触发事件调度；
// delete 先级联删除回答的附件，再删除回答本身
type Repository interface {
	Create(ctx context.Context, answer *Answer) error

	// Save 整体替换已存在的回答，不存在时返回 shared.ErrNotFound
	Save(ctx context.Context, answer *Answer) error

	// Delete 不存在时返回 shared.ErrNotFound，级联失败返回 shared.ErrCascadeFailure
	Delete(ctx context.Context, answer *Answer) error

	// FindByID 未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id shared.UniqueEntityID) (*Answer, error)

	// FindManyByQuestionID 按插入顺序分页，超出范围返回空切片
	FindManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID, params shared.PaginationParams) ([]*Answer, error)
}
