package memory

import (
	"context"
	"slices"

	"forum/domain/attachment"
	"forum/domain/question"
	"forum/domain/shared"
	"forum/infrastructure/persistence"
)

// QuestionRepository 提问内存仓储
type QuestionRepository struct {
	store       *store[*question.Question]
	events      *shared.DomainEvents
	attachments attachment.QuestionAttachmentRepository
}

// NewQuestionRepository attachments 用于删除提问时级联删除附件
func NewQuestionRepository(events *shared.DomainEvents, attachments attachment.QuestionAttachmentRepository) *QuestionRepository {
	return &QuestionRepository{
		store:       newStore[*question.Question](),
		events:      events,
		attachments: attachments,
	}
}

func (r *QuestionRepository) Create(ctx context.Context, q *question.Question) error {
	r.events.MarkAggregateForDispatch(q)

	r.store.mu.Lock()
	ok := r.store.insert(q)
	r.store.mu.Unlock()

	if !ok {
		r.events.UnmarkAggregateInstance(q)
		return shared.NewConflictError(question.EntityName, q.ID())
	}
	return persistence.DispatchAfterCommit(ctx, r.events, q)
}

func (r *QuestionRepository) Save(ctx context.Context, q *question.Question) error {
	r.events.MarkAggregateForDispatch(q)

	r.store.mu.Lock()
	ok := r.store.replace(q)
	r.store.mu.Unlock()

	if !ok {
		r.events.UnmarkAggregateInstance(q)
		return shared.NewNotFoundError(question.EntityName, q.ID())
	}
	return persistence.DispatchAfterCommit(ctx, r.events, q)
}

// Delete 先删除附件再删除提问，级联失败时提问保持不变
func (r *QuestionRepository) Delete(ctx context.Context, q *question.Question) error {
	if !r.store.exists(q.ID()) {
		return shared.NewNotFoundError(question.EntityName, q.ID())
	}

	if err := r.attachments.DeleteManyByQuestionID(ctx, q.ID()); err != nil {
		return shared.NewCascadeFailureError(question.EntityName, q.ID(), err)
	}

	r.events.MarkAggregateForDispatch(q)

	r.store.mu.Lock()
	ok := r.store.remove(q.ID())
	r.store.mu.Unlock()

	if !ok {
		r.events.UnmarkAggregateInstance(q)
		return shared.NewNotFoundError(question.EntityName, q.ID())
	}
	return persistence.DispatchAfterCommit(ctx, r.events, q)
}

func (r *QuestionRepository) FindByID(ctx context.Context, id shared.UniqueEntityID) (*question.Question, error) {
	q, ok := r.store.get(id)
	if !ok {
		return nil, nil
	}
	return q, nil
}

func (r *QuestionRepository) FindBySlug(ctx context.Context, slug string) (*question.Question, error) {
	matched := shared.Filter(ctx, r.store.all(), question.NewBySlugSpecification(slug))
	if len(matched) == 0 {
		return nil, nil
	}
	return matched[0], nil
}

// FindManyRecent 按创建时间倒序，创建时间相同时后插入的在前
func (r *QuestionRepository) FindManyRecent(ctx context.Context, params shared.PaginationParams) ([]*question.Question, error) {
	all := r.store.all()
	slices.Reverse(all)
	slices.SortStableFunc(all, func(a, b *question.Question) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return page(all, params), nil
}

// Items 按插入顺序返回全部提问（测试断言用）
func (r *QuestionRepository) Items() []*question.Question {
	return r.store.all()
}

// Len 已保存的提问数量
func (r *QuestionRepository) Len() int {
	return r.store.count()
}

var _ question.Repository = (*QuestionRepository)(nil)
