package question

import (
	"time"

	"forum/domain/question"
)

// CreateQuestionRequest 创建提问入参
type CreateQuestionRequest struct {
	AuthorID string `json:"author_id"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// ChooseBestAnswerRequest 选择最佳回答入参
type ChooseBestAnswerRequest struct {
	QuestionID string `json:"-"`
	AuthorID   string `json:"author_id"`
	AnswerID   string `json:"answer_id" binding:"required"`
}

// EditQuestionRequest 修改提问入参，空字段保持不变
type EditQuestionRequest struct {
	QuestionID string `json:"-"`
	AuthorID   string `json:"author_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// DeleteQuestionRequest 删除提问入参
type DeleteQuestionRequest struct {
	QuestionID string
	AuthorID   string
}

// FetchRecentQuestionsRequest 最新提问分页入参
type FetchRecentQuestionsRequest struct {
	Page int
}

// QuestionResponse 包装用例产出的聚合
type QuestionResponse struct {
	Question *question.Question
}

// QuestionListResponse 分页结果
type QuestionListResponse struct {
	Questions []*question.Question
	Page      int
}

// QuestionDTO 提问返回模型
type QuestionDTO struct {
	ID           string     `json:"id"`
	AuthorID     string     `json:"author_id"`
	BestAnswerID string     `json:"best_answer_id,omitempty"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
	Excerpt      string     `json:"excerpt"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
