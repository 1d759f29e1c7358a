package memory

import (
	"context"
	"sync"

	"forum/domain/attachment"
	"forum/domain/shared"
)

// AnswerAttachmentRepository 回答附件内存仓储
// 记录每次级联删除调用，可以通过 FailDeletesWith 模拟删除失败
type AnswerAttachmentRepository struct {
	mu          sync.RWMutex
	items       []*attachment.AnswerAttachment
	deleteCalls []shared.UniqueEntityID
	deleteErr   error
}

func NewAnswerAttachmentRepository() *AnswerAttachmentRepository {
	return &AnswerAttachmentRepository{}
}

func (r *AnswerAttachmentRepository) Create(ctx context.Context, a *attachment.AnswerAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, a)
	return nil
}

func (r *AnswerAttachmentRepository) FindManyByAnswerID(ctx context.Context, answerID shared.UniqueEntityID) ([]*attachment.AnswerAttachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*attachment.AnswerAttachment, 0)
	for _, a := range r.items {
		if a.AnswerID().Equals(answerID) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *AnswerAttachmentRepository) DeleteManyByAnswerID(ctx context.Context, answerID shared.UniqueEntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteCalls = append(r.deleteCalls, answerID)
	if r.deleteErr != nil {
		return r.deleteErr
	}

	kept := r.items[:0]
	for _, a := range r.items {
		if !a.AnswerID().Equals(answerID) {
			kept = append(kept, a)
		}
	}
	r.items = kept
	return nil
}

// FailDeletesWith 之后的 DeleteManyByAnswerID 返回 err；传 nil 恢复正常
func (r *AnswerAttachmentRepository) FailDeletesWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteErr = err
}

// DeleteCalls 返回每次级联删除的回答 ID
func (r *AnswerAttachmentRepository) DeleteCalls() []shared.UniqueEntityID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]shared.UniqueEntityID(nil), r.deleteCalls...)
}

// Len 附件关联数量
func (r *AnswerAttachmentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// QuestionAttachmentRepository 提问附件内存仓储
type QuestionAttachmentRepository struct {
	mu          sync.RWMutex
	items       []*attachment.QuestionAttachment
	deleteCalls []shared.UniqueEntityID
	deleteErr   error
}

func NewQuestionAttachmentRepository() *QuestionAttachmentRepository {
	return &QuestionAttachmentRepository{}
}

func (r *QuestionAttachmentRepository) Create(ctx context.Context, a *attachment.QuestionAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, a)
	return nil
}

func (r *QuestionAttachmentRepository) FindManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID) ([]*attachment.QuestionAttachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*attachment.QuestionAttachment, 0)
	for _, a := range r.items {
		if a.QuestionID().Equals(questionID) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *QuestionAttachmentRepository) DeleteManyByQuestionID(ctx context.Context, questionID shared.UniqueEntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteCalls = append(r.deleteCalls, questionID)
	if r.deleteErr != nil {
		return r.deleteErr
	}

	kept := r.items[:0]
	for _, a := range r.items {
		if !a.QuestionID().Equals(questionID) {
			kept = append(kept, a)
		}
	}
	r.items = kept
	return nil
}

// FailDeletesWith 之后的 DeleteManyByQuestionID 返回 err；传 nil 恢复正常
func (r *QuestionAttachmentRepository) FailDeletesWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteErr = err
}

// DeleteCalls 返回每次级联删除的提问 ID
func (r *QuestionAttachmentRepository) DeleteCalls() []shared.UniqueEntityID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]shared.UniqueEntityID(nil), r.deleteCalls...)
}

// Len 附件关联数量
func (r *QuestionAttachmentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

var (
	_ attachment.AnswerAttachmentRepository   = (*AnswerAttachmentRepository)(nil)
	_ attachment.QuestionAttachmentRepository = (*QuestionAttachmentRepository)(nil)
)
