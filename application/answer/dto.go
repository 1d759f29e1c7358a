package answer

import (
	"time"

	"forum/domain/answer"
)

// AnswerQuestionRequest 回答提问入参
type AnswerQuestionRequest struct {
	InstructorID string `json:"instructor_id"`
	QuestionID   string `json:"-"`
	Content      string `json:"content" binding:"required"`
}

// EditAnswerRequest 修改回答入参
type EditAnswerRequest struct {
	AnswerID string `json:"-"`
	AuthorID string `json:"author_id"`
	Content  string `json:"content" binding:"required"`
}

// DeleteAnswerRequest 删除回答入参
type DeleteAnswerRequest struct {
	AnswerID string
	AuthorID string
}

// FetchQuestionAnswersRequest 提问的回答分页入参
type FetchQuestionAnswersRequest struct {
	QuestionID string
	Page       int
}

// AnswerResponse 包装用例产出的聚合
type AnswerResponse struct {
	Answer *answer.Answer
}

// AnswerListResponse 分页结果
type AnswerListResponse struct {
	Answers []*answer.Answer
	Page    int
}

// AnswerDTO 回答返回模型
type AnswerDTO struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"author_id"`
	QuestionID string     `json:"question_id"`
	Content    string     `json:"content"`
	Excerpt    string     `json:"excerpt"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
