package gormdb

import (
	"context"
	"fmt"

	"forum/domain/answer"
	"forum/domain/attachment"
	"forum/domain/shared"
	"forum/infrastructure/persistence"
	"forum/infrastructure/persistence/gormdb/po"
	"forum/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	db          *gorm.DB
	events      *shared.DomainEvents
	attachments attachment.AnswerAttachmentRepository
}

func NewAnswerRepository(db *gorm.DB, events *shared.DomainEvents, attachments attachment.AnswerAttachmentRepository) *AnswerRepository {
	return &AnswerRepository{db: db, events: events, attachments: attachments}
}

func (r *AnswerRepository) Create(ctx context.Context, a *answer.Answer) error {
	r.events.MarkAggregateForDispatch(a)

	if err := conn(ctx, r.db).Create(po.FromAnswerDomain(a)).Error; err != nil {
		r.events.UnmarkAggregateInstance(a)
		if isDuplicateKeyError(err) {
			return shared.NewConflictError(answer.EntityName, a.ID())
		}
		return err
	}

	return persistence.DispatchAfterCommit(ctx, r.events, a)
}

func (r *AnswerRepository) Save(ctx context.Context, a *answer.Answer) error {
	r.events.MarkAggregateForDispatch(a)

	if err := inTx(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		answerPO := po.FromAnswerDomain(a)
		result := tx.Model(&po.AnswerPO{}).
			Where("id = ?", answerPO.ID).
			Updates(map[string]any{
				"author_id":   answerPO.AuthorID,
				"question_id": answerPO.QuestionID,
				"content":     answerPO.Content,
				"updated_at":  answerPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// MySQL 对未变化的行返回 0，需要再确认是否存在
			var count int64
			if err := tx.Model(&po.AnswerPO{}).Where("id = ?", answerPO.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.NewNotFoundError(answer.EntityName, a.ID())
			}
		}
		return nil
	}); err != nil {
		r.events.UnmarkAggregateInstance(a)
		return err
	}

	return persistence.DispatchAfterCommit(ctx, r.events, a)
}

// Delete 在同一事务中先删除附件再删除回答，级联失败时整体回滚
func (r *AnswerRepository) Delete(ctx context.Context, a *answer.Answer) error {
	r.events.MarkAggregateForDispatch(a)

	if err := inTx(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&po.AnswerPO{}).Where("id = ?", a.ID().String()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NewNotFoundError(answer.EntityName, a.ID())
		}

		if err := r.attachments.DeleteManyByAnswerID(ctx, a.ID()); err != nil {
			return shared.NewCascadeFailureError(answer.EntityName, a.ID(), err)
		}

		return tx.Delete(&po.AnswerPO{}, "id = ?", a.ID().String()).Error
	}); err != nil {
		r.events.UnmarkAggregateInstance(a)
		return err
	}

	return persistence.DispatchAfterCommit(ctx, r.events, a)
}

func (r *AnswerRepository) FindByID(ctx context.Context, id shared.UniqueEntityID) (*answer.Answer, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var answerPO po.AnswerPO
	if err := conn(ctx, r.db).First(&answerPO, "id = ?", id.String()).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return answerPO.ToDomain(), nil
}

// FindManyByQuestionID 按创建顺序分页（UUIDv7 的 id 与创建顺序一致）
func (r *AnswerRepository) FindManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID, params shared.PaginationParams) ([]*answer.Answer, error) {
	if params.Page < 1 {
		return []*answer.Answer{}, nil
	}

	scope, ok := specification.Translate(answer.NewByQuestionIDSpecification(questionID))
	if !ok {
		return nil, fmt.Errorf("unsupported answer specification")
	}

	var answerPOs []po.AnswerPO
	if err := conn(ctx, r.db).
		Scopes(scope).
		Order("created_at ASC").
		Order("id ASC").
		Limit(shared.PageSize).
		Offset(params.Offset()).
		Find(&answerPOs).Error; err != nil {
		return nil, err
	}

	answers := make([]*answer.Answer, len(answerPOs))
	for i := range answerPOs {
		answers[i] = answerPOs[i].ToDomain()
	}
	return answers, nil
}

var _ answer.Repository = (*AnswerRepository)(nil)
