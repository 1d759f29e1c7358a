package answer

import (
	"errors"

	"forum/domain/shared"
)

var (
	// ErrNotAuthor 只有作者可以修改或删除回答
	ErrNotAuthor = errors.New("not the author of the answer")
)

// NewNotAuthorError 创建非作者操作错误
func NewNotAuthorError(answerID shared.UniqueEntityID) error {
	return shared.NewDomainError(shared.ErrForbidden, ErrNotAuthor, EntityName, "", "answer "+answerID.String())
}
