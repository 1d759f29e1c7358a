/*
Package shared - 领域层共享错误定义

设计原则:
1. 领域层定义哨兵错误(sentinel errors)，用于 errors.Is() 类型安全判断
2. DomainError 在创建时捕获堆栈，但延迟格式化（按需打印）
3. 领域错误不包含 HTTP 状态码等传输层概念
4. 使用标准库 errors，不依赖第三方包

错误分类:
- ErrConflict: create 使用了已存在的标识
- ErrNotFound: save/delete 引用了不存在的标识（FindByID 未命中是正常结果，不返回错误）
- ErrCascadeFailure: 删除父聚合时子集合删除失败，父聚合保持不变
- ErrSubscriberFailure: 调度时订阅者返回错误，写入已经提交
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// 哨兵错误 (Sentinel Errors)
// ============================================================================

var (
	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput 无效输入
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict 标识已存在
	ErrConflict = errors.New("conflict")

	// ErrForbidden 禁止访问（不是资源的作者）
	ErrForbidden = errors.New("forbidden")

	// ErrCascadeFailure 级联删除失败
	ErrCascadeFailure = errors.New("cascade failure")

	// ErrSubscriberFailure 事件订阅者执行失败
	ErrSubscriberFailure = errors.New("subscriber failure")
)

// ============================================================================
// 领域错误结构体 (Domain Error)
// ============================================================================

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err 底层哨兵错误，用于 errors.Is() 判断
	Err error

	// Cause 可选：导致该错误的下层错误
	Cause error

	// Entity 发生错误的实体名称（如 "answer", "question"）
	Entity string

	// Message 人类可读的错误描述
	Message string

	// Field 可选：发生错误的字段名
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap 同时暴露哨兵错误和下层错误，errors.Is 对两者都生效
func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Stack 按需格式化堆栈（只在打印日志时调用）
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack 捕获当前调用栈
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧为字符串切片，过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// 领域错误构造函数
// ============================================================================

// NewDomainError 供各子域构造带堆栈的领域错误
// sentinel 是错误分类（ErrInvalidInput、ErrForbidden 等），cause 是子域自己的哨兵错误
func NewDomainError(sentinel, cause error, entity, field, message string) error {
	return &DomainError{
		Err:     sentinel,
		Cause:   cause,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewNotFoundError 创建"未找到"领域错误
func NewNotFoundError(entity string, id UniqueEntityID) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found: " + id.String(),
		stack:   CaptureStack(3),
	}
}

// NewConflictError 创建"标识已存在"领域错误
func NewConflictError(entity string, id UniqueEntityID) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: entity + " already exists: " + id.String(),
		stack:   CaptureStack(3),
	}
}

// NewValidationError 创建"校验失败"领域错误
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError 创建"禁止访问"领域错误
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewCascadeFailureError 创建"级联删除失败"领域错误
func NewCascadeFailureError(entity string, parentID UniqueEntityID, cause error) error {
	return &DomainError{
		Err:     ErrCascadeFailure,
		Cause:   cause,
		Entity:  entity,
		Message: "failed to delete dependents of " + entity + " " + parentID.String(),
		stack:   CaptureStack(3),
	}
}

// NewSubscriberFailureError 创建"订阅者失败"领域错误
func NewSubscriberFailureError(eventName, handlerName string, cause error) error {
	return &DomainError{
		Err:     ErrSubscriberFailure,
		Cause:   cause,
		Entity:  "event",
		Message: fmt.Sprintf("handler %s failed on %s", handlerName, eventName),
		stack:   CaptureStack(3),
	}
}

// Stacker 可提供堆栈的错误接口，用于 API 层统一提取堆栈
type Stacker interface {
	Stack() []string
}
