package gormdb

import (
	"context"
	"fmt"

	"forum/domain/attachment"
	"forum/domain/question"
	"forum/domain/shared"
	"forum/infrastructure/persistence"
	"forum/infrastructure/persistence/gormdb/po"
	"forum/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	db          *gorm.DB
	events      *shared.DomainEvents
	attachments attachment.QuestionAttachmentRepository
}

func NewQuestionRepository(db *gorm.DB, events *shared.DomainEvents, attachments attachment.QuestionAttachmentRepository) *QuestionRepository {
	return &QuestionRepository{db: db, events: events, attachments: attachments}
}

func (r *QuestionRepository) Create(ctx context.Context, q *question.Question) error {
	r.events.MarkAggregateForDispatch(q)

	if err := conn(ctx, r.db).Create(po.FromQuestionDomain(q)).Error; err != nil {
		r.events.UnmarkAggregateInstance(q)
		if isDuplicateKeyError(err) {
			return shared.NewConflictError(question.EntityName, q.ID())
		}
		return err
	}

	return persistence.DispatchAfterCommit(ctx, r.events, q)
}

func (r *QuestionRepository) Save(ctx context.Context, q *question.Question) error {
	r.events.MarkAggregateForDispatch(q)

	if err := inTx(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		questionPO := po.FromQuestionDomain(q)
		result := tx.Model(&po.QuestionPO{}).
			Where("id = ?", questionPO.ID).
			Updates(map[string]any{
				"author_id":      questionPO.AuthorID,
				"best_answer_id": questionPO.BestAnswerID,
				"title":          questionPO.Title,
				"content":        questionPO.Content,
				"slug":           questionPO.Slug,
				"updated_at":     questionPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.QuestionPO{}).Where("id = ?", questionPO.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.NewNotFoundError(question.EntityName, q.ID())
			}
		}
		return nil
	}); err != nil {
		r.events.UnmarkAggregateInstance(q)
		return err
	}

	return persistence.DispatchAfterCommit(ctx, r.events, q)
}

// Delete 在同一事务中先删除附件再删除提问，级联失败时整体回滚
func (r *QuestionRepository) Delete(ctx context.Context, q *question.Question) error {
	r.events.MarkAggregateForDispatch(q)

	if err := inTx(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&po.QuestionPO{}).Where("id = ?", q.ID().String()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NewNotFoundError(question.EntityName, q.ID())
		}

		if err := r.attachments.DeleteManyByQuestionID(ctx, q.ID()); err != nil {
			return shared.NewCascadeFailureError(question.EntityName, q.ID(), err)
		}

		return tx.Delete(&po.QuestionPO{}, "id = ?", q.ID().String()).Error
	}); err != nil {
		r.events.UnmarkAggregateInstance(q)
		return err
	}

	return persistence.DispatchAfterCommit(ctx, r.events, q)
}

func (r *QuestionRepository) FindByID(ctx context.Context, id shared.UniqueEntityID) (*question.Question, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var questionPO po.QuestionPO
	if err := conn(ctx, r.db).First(&questionPO, "id = ?", id.String()).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return questionPO.ToDomain(), nil
}

func (r *QuestionRepository) FindBySlug(ctx context.Context, slug string) (*question.Question, error) {
	return r.findOneBySpecification(ctx, question.NewBySlugSpecification(slug))
}

func (r *QuestionRepository) FindManyRecent(ctx context.Context, params shared.PaginationParams) ([]*question.Question, error) {
	if params.Page < 1 {
		return []*question.Question{}, nil
	}

	var questionPOs []po.QuestionPO
	if err := conn(ctx, r.db).
		Order("created_at DESC").
		Order("id DESC").
		Limit(shared.PageSize).
		Offset(params.Offset()).
		Find(&questionPOs).Error; err != nil {
		return nil, err
	}

	questions := make([]*question.Question, len(questionPOs))
	for i := range questionPOs {
		questions[i] = questionPOs[i].ToDomain()
	}
	return questions, nil
}

func (r *QuestionRepository) findOneBySpecification(ctx context.Context, spec shared.Specification[*question.Question]) (*question.Question, error) {
	scope, ok := specification.Translate(spec)
	if !ok {
		return nil, fmt.Errorf("unsupported question specification %T", spec)
	}

	var questionPO po.QuestionPO
	if err := conn(ctx, r.db).Scopes(scope).Order("created_at ASC").First(&questionPO).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return questionPO.ToDomain(), nil
}

var _ question.Repository = (*QuestionRepository)(nil)
