package memory

import (
	"context"

	"forum/domain/answer"
	"forum/domain/attachment"
	"forum/domain/shared"
	"forum/infrastructure/persistence"
)

// AnswerRepository 回答内存仓储
type AnswerRepository struct {
	store       *store[*answer.Answer]
	events      *shared.DomainEvents
	attachments attachment.AnswerAttachmentRepository
}

// NewAnswerRepository attachments 用于删除回答时级联删除附件
func NewAnswerRepository(events *shared.DomainEvents, attachments attachment.AnswerAttachmentRepository) *AnswerRepository {
	return &AnswerRepository{
		store:       newStore[*answer.Answer](),
		events:      events,
		attachments: attachments,
	}
}

func (r *AnswerRepository) Create(ctx context.Context, a *answer.Answer) error {
	r.events.MarkAggregateForDispatch(a)

	r.store.mu.Lock()
	ok := r.store.insert(a)
	r.store.mu.Unlock()

	if !ok {
		r.events.UnmarkAggregateInstance(a)
		return shared.NewConflictError(answer.EntityName, a.ID())
	}
	return persistence.DispatchAfterCommit(ctx, r.events, a)
}

func (r *AnswerRepository) Save(ctx context.Context, a *answer.Answer) error {
	r.events.MarkAggregateForDispatch(a)

	r.store.mu.Lock()
	ok := r.store.replace(a)
	r.store.mu.Unlock()

	if !ok {
		r.events.UnmarkAggregateInstance(a)
		return shared.NewNotFoundError(answer.EntityName, a.ID())
	}
	return persistence.DispatchAfterCommit(ctx, r.events, a)
}

// Delete 先删除附件再删除回答，级联失败时回答保持不变
func (r *AnswerRepository) Delete(ctx context.Context, a *answer.Answer) error {
	if !r.store.exists(a.ID()) {
		return shared.NewNotFoundError(answer.EntityName, a.ID())
	}

	if err := r.attachments.DeleteManyByAnswerID(ctx, a.ID()); err != nil {
		return shared.NewCascadeFailureError(answer.EntityName, a.ID(), err)
	}

	r.events.MarkAggregateForDispatch(a)

	r.store.mu.Lock()
	ok := r.store.remove(a.ID())
	r.store.mu.Unlock()

	if !ok {
		r.events.UnmarkAggregateInstance(a)
		return shared.NewNotFoundError(answer.EntityName, a.ID())
	}
	return persistence.DispatchAfterCommit(ctx, r.events, a)
}

func (r *AnswerRepository) FindByID(ctx context.Context, id shared.UniqueEntityID) (*answer.Answer, error) {
	a, ok := r.store.get(id)
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *AnswerRepository) FindManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID, params shared.PaginationParams) ([]*answer.Answer, error) {
	matched := shared.Filter(ctx, r.store.all(), answer.NewByQuestionIDSpecification(questionID))
	return page(matched, params), nil
}

// Items 按插入顺序返回全部回答（测试断言用）
func (r *AnswerRepository) Items() []*answer.Answer {
	return r.store.all()
}

// Len 已保存的回答数量
func (r *AnswerRepository) Len() int {
	return r.store.count()
}

var _ answer.Repository = (*AnswerRepository)(nil)
