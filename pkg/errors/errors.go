/*
Package errors 应用错误码

领域层只定义哨兵错误和 DomainError，这里把它们翻译成对外稳定的错误码；
错误码到 HTTP 状态码的映射放在 api/response。
*/
package errors

import (
	"errors"
	"fmt"

	"forum/domain/answer"
	"forum/domain/question"
	"forum/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// 业务错误码
	CodeQuestionNotFound  ErrorCode = "QUESTION_NOT_FOUND"
	CodeAnswerNotFound    ErrorCode = "ANSWER_NOT_FOUND"
	CodeNotAuthor         ErrorCode = "NOT_AUTHOR"
	CodeAnswerMismatch    ErrorCode = "ANSWER_OF_ANOTHER_QUESTION"
	CodeCascadeFailure    ErrorCode = "CASCADE_FAILURE"
	CodeSubscriberFailure ErrorCode = "SUBSCRIBER_FAILURE"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError 将领域错误转换为应用错误
// 子域哨兵优先于通用分类，未识别的错误一律视为内部错误
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()

	switch {
	case errors.Is(err, question.ErrNotAuthor), errors.Is(err, answer.ErrNotAuthor):
		return Wrap(err, CodeNotAuthor, "only the author can perform this action")
	case errors.Is(err, question.ErrAnswerOfAnotherQuestion):
		return Wrap(err, CodeAnswerMismatch, msg)
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, notFoundCode(err), msg)
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, msg)
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, msg)
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, msg)
	case errors.Is(err, shared.ErrCascadeFailure):
		return Wrap(err, CodeCascadeFailure, msg)
	case errors.Is(err, shared.ErrSubscriberFailure):
		// 写入已经提交，只有后续处理失败
		return Wrap(err, CodeSubscriberFailure, "the change was saved but a follow-up action failed")
	default:
		return Wrap(err, CodeInternal, msg)
	}
}

func notFoundCode(err error) ErrorCode {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return CodeNotFound
	}
	switch domainErr.Entity {
	case question.EntityName:
		return CodeQuestionNotFound
	case answer.EntityName:
		return CodeAnswerNotFound
	default:
		return CodeNotFound
	}
}
