package question

import (
	"forum/domain/question"
)

// ToDTO 将聚合转换为返回模型
func ToDTO(q *question.Question) QuestionDTO {
	dto := QuestionDTO{
		ID:           q.ID().String(),
		AuthorID:     q.AuthorID().String(),
		BestAnswerID: q.BestAnswerID().String(),
		Title:        q.Title(),
		Slug:         q.Slug().Value(),
		Content:      q.Content(),
		Excerpt:      q.Excerpt(),
		CreatedAt:    q.CreatedAt(),
	}
	if updatedAt := q.UpdatedAt(); !updatedAt.IsZero() {
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

// ToDTOs 批量转换
func ToDTOs(questions []*question.Question) []QuestionDTO {
	dtos := make([]QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = ToDTO(q)
	}
	return dtos
}
