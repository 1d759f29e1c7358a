package gormdb

import (
	"context"

	"forum/domain/attachment"
	"forum/domain/shared"
	"forum/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
)

type AnswerAttachmentRepository struct {
	db *gorm.DB
}

func NewAnswerAttachmentRepository(db *gorm.DB) *AnswerAttachmentRepository {
	return &AnswerAttachmentRepository{db: db}
}

func (r *AnswerAttachmentRepository) Create(ctx context.Context, a *attachment.AnswerAttachment) error {
	return conn(ctx, r.db).Create(po.FromAnswerAttachmentDomain(a)).Error
}

func (r *AnswerAttachmentRepository) FindManyByAnswerID(ctx context.Context, answerID shared.UniqueEntityID) ([]*attachment.AnswerAttachment, error) {
	var attachmentPOs []po.AnswerAttachmentPO
	if err := conn(ctx, r.db).Where("answer_id = ?", answerID.String()).Order("id ASC").Find(&attachmentPOs).Error; err != nil {
		return nil, err
	}

	result := make([]*attachment.AnswerAttachment, len(attachmentPOs))
	for i := range attachmentPOs {
		result[i] = attachmentPOs[i].ToDomain()
	}
	return result, nil
}

func (r *AnswerAttachmentRepository) DeleteManyByAnswerID(ctx context.Context, answerID shared.UniqueEntityID) error {
	return conn(ctx, r.db).Delete(&po.AnswerAttachmentPO{}, "answer_id = ?", answerID.String()).Error
}

type QuestionAttachmentRepository struct {
	db *gorm.DB
}

func NewQuestionAttachmentRepository(db *gorm.DB) *QuestionAttachmentRepository {
	return &QuestionAttachmentRepository{db: db}
}

func (r *QuestionAttachmentRepository) Create(ctx context.Context, a *attachment.QuestionAttachment) error {
	return conn(ctx, r.db).Create(po.FromQuestionAttachmentDomain(a)).Error
}

func (r *QuestionAttachmentRepository) FindManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID) ([]*attachment.QuestionAttachment, error) {
	var attachmentPOs []po.QuestionAttachmentPO
	if err := conn(ctx, r.db).Where("question_id = ?", questionID.String()).Order("id ASC").Find(&attachmentPOs).Error; err != nil {
		return nil, err
	}

	result := make([]*attachment.QuestionAttachment, len(attachmentPOs))
	for i := range attachmentPOs {
		result[i] = attachmentPOs[i].ToDomain()
	}
	return result, nil
}

func (r *QuestionAttachmentRepository) DeleteManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID) error {
	return conn(ctx, r.db).Delete(&po.QuestionAttachmentPO{}, "question_id = ?", questionID.String()).Error
}

var (
	_ attachment.AnswerAttachmentRepository   = (*AnswerAttachmentRepository)(nil)
	_ attachment.QuestionAttachmentRepository = (*QuestionAttachmentRepository)(nil)
)
