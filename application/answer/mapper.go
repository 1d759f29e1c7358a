package answer

import (
	"forum/domain/answer"
)

// ToDTO 将聚合转换为返回模型
func ToDTO(a *answer.Answer) AnswerDTO {
	dto := AnswerDTO{
		ID:         a.ID().String(),
		AuthorID:   a.AuthorID().String(),
		QuestionID: a.QuestionID().String(),
		Content:    a.Content(),
		Excerpt:    a.Excerpt(),
		CreatedAt:  a.CreatedAt(),
	}
	if updatedAt := a.UpdatedAt(); !updatedAt.IsZero() {
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

// ToDTOs 批量转换
func ToDTOs(answers []*answer.Answer) []AnswerDTO {
	dtos := make([]AnswerDTO, len(answers))
	for i, a := range answers {
		dtos[i] = ToDTO(a)
	}
	return dtos
}
