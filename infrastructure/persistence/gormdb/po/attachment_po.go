package po

import (
	"forum/domain/attachment"
	"forum/domain/shared"
)

type QuestionAttachmentPO struct {
	ID           string `gorm:"primaryKey;size:64"`
	AttachmentID string `gorm:"size:64;not null"`
	QuestionID   string `gorm:"size:64;not null;index"`
}

func (QuestionAttachmentPO) TableName() string {
	return "question_attachments"
}

func FromQuestionAttachmentDomain(a *attachment.QuestionAttachment) *QuestionAttachmentPO {
	return &QuestionAttachmentPO{
		ID:           a.ID().String(),
		AttachmentID: a.AttachmentID().String(),
		QuestionID:   a.QuestionID().String(),
	}
}

func (po *QuestionAttachmentPO) ToDomain() *attachment.QuestionAttachment {
	return attachment.NewQuestionAttachment(
		shared.UniqueEntityID(po.AttachmentID),
		shared.UniqueEntityID(po.QuestionID),
		shared.UniqueEntityID(po.ID),
	)
}

type AnswerAttachmentPO struct {
	ID           string `gorm:"primaryKey;size:64"`
	AttachmentID string `gorm:"size:64;not null"`
	AnswerID     string `gorm:"size:64;not null;index"`
}

func (AnswerAttachmentPO) TableName() string {
	return "answer_attachments"
}

func FromAnswerAttachmentDomain(a *attachment.AnswerAttachment) *AnswerAttachmentPO {
	return &AnswerAttachmentPO{
		ID:           a.ID().String(),
		AttachmentID: a.AttachmentID().String(),
		AnswerID:     a.AnswerID().String(),
	}
}

func (po *AnswerAttachmentPO) ToDomain() *attachment.AnswerAttachment {
	return attachment.NewAnswerAttachment(
		shared.UniqueEntityID(po.AttachmentID),
		shared.UniqueEntityID(po.AnswerID),
		shared.UniqueEntityID(po.ID),
	)
}

// All 需要迁移的全部表
func All() []any {
	return []any{
		&QuestionPO{},
		&AnswerPO{},
		&QuestionAttachmentPO{},
		&AnswerAttachmentPO{},
	}
}
