package attachment

import (
	"context"

	"forum/domain/shared"
)

// QuestionAttachmentRepository 提问附件仓储
type QuestionAttachmentRepository interface {
	Create(ctx context.Context, attachment *QuestionAttachment) error
	FindManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID) ([]*QuestionAttachment, error)

	// DeleteManyByQuestionID 删除提问的全部附件关联，没有附件时不是错误
	DeleteManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID) error
}

// AnswerAttachmentRepository 回答附件仓储
type AnswerAttachmentRepository interface {
	Create(ctx context.Context, attachment *AnswerAttachment) error
	FindManyByAnswerID(ctx context.Context, answerID shared.UniqueEntityID) ([]*AnswerAttachment, error)

	// DeleteManyByAnswerID 删除回答的全部附件关联，没有附件时不是错误
	DeleteManyByAnswerID(ctx context.Context, answerID shared.UniqueEntityID) error
}
