/*
Package attachment 附件关联

附件本身的业务规则不在论坛领域内，这里只保留附件与提问/回答的关联，
用于删除父聚合时级联删除。
*/
package attachment

import (
	"forum/domain/shared"
)

// QuestionAttachment 提问附件关联
type QuestionAttachment struct {
	id           shared.UniqueEntityID
	attachmentID shared.UniqueEntityID
	questionID   shared.UniqueEntityID
}

// NewQuestionAttachment id 为空时生成新标识
func NewQuestionAttachment(attachmentID, questionID, id shared.UniqueEntityID) *QuestionAttachment {
	if id.IsZero() {
		id = shared.NewUniqueEntityID()
	}
	return &QuestionAttachment{id: id, attachmentID: attachmentID, questionID: questionID}
}

func (a *QuestionAttachment) ID() shared.UniqueEntityID           { return a.id }
func (a *QuestionAttachment) AttachmentID() shared.UniqueEntityID { return a.attachmentID }
func (a *QuestionAttachment) QuestionID() shared.UniqueEntityID   { return a.questionID }

// AnswerAttachment 回答附件关联
type AnswerAttachment struct {
	id           shared.UniqueEntityID
	attachmentID shared.UniqueEntityID
	answerID     shared.UniqueEntityID
}

// NewAnswerAttachment id 为空时生成新标识
func NewAnswerAttachment(attachmentID, answerID, id shared.UniqueEntityID) *AnswerAttachment {
	if id.IsZero() {
		id = shared.NewUniqueEntityID()
	}
	return &AnswerAttachment{id: id, attachmentID: attachmentID, answerID: answerID}
}

func (a *AnswerAttachment) ID() shared.UniqueEntityID           { return a.id }
func (a *AnswerAttachment) AttachmentID() shared.UniqueEntityID { return a.attachmentID }
func (a *AnswerAttachment) AnswerID() shared.UniqueEntityID     { return a.answerID }

var (
	_ shared.Entity = (*QuestionAttachment)(nil)
	_ shared.Entity = (*AnswerAttachment)(nil)
)
