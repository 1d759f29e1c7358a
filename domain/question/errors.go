/*
Package question - 提问领域错误定义

哨兵错误用于 errors.Is() 判断；构造函数返回 *shared.DomainError，
同时可以用 shared.ErrInvalidInput / shared.ErrForbidden 判断错误分类。
*/
package question

import (
	"errors"

	"forum/domain/shared"
)

var (
	// ErrNotAuthor 只有作者可以执行该操作
	ErrNotAuthor = errors.New("not the author of the question")

	// ErrAnswerOfAnotherQuestion 最佳回答必须属于该提问
	ErrAnswerOfAnotherQuestion = errors.New("answer does not belong to the question")
)

// NewNotAuthorError 创建非作者操作错误
func NewNotAuthorError(questionID shared.UniqueEntityID) error {
	return shared.NewDomainError(shared.ErrForbidden, ErrNotAuthor, EntityName, "", "question "+questionID.String())
}

// NewAnswerOfAnotherQuestionError 创建回答不属于提问错误
func NewAnswerOfAnotherQuestionError(questionID, answerID shared.UniqueEntityID) error {
	return shared.NewDomainError(shared.ErrInvalidInput, ErrAnswerOfAnotherQuestion, EntityName, "answer_id", "answer "+answerID.String()+" for question "+questionID.String())
}
