package po

import (
	"time"

	"forum/domain/answer"
)

type AnswerPO struct {
	ID         string     `gorm:"primaryKey;size:64"`
	AuthorID   string     `gorm:"size:64;not null;index"`
	QuestionID string     `gorm:"size:64;not null;index"`
	Content    string     `gorm:"type:text;not null"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime:false"`
}

func (AnswerPO) TableName() string {
	return "answers"
}

func FromAnswerDomain(a *answer.Answer) *AnswerPO {
	return &AnswerPO{
		ID:         a.ID().String(),
		AuthorID:   a.AuthorID().String(),
		QuestionID: a.QuestionID().String(),
		Content:    a.Content(),
		CreatedAt:  a.CreatedAt(),
		UpdatedAt:  optionalTime(a.UpdatedAt()),
	}
}

func (po *AnswerPO) ToDomain() *answer.Answer {
	return answer.RebuildFromDTO(answer.ReconstructionDTO{
		ID:         po.ID,
		AuthorID:   po.AuthorID,
		QuestionID: po.QuestionID,
		Content:    po.Content,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  valueOf(po.UpdatedAt),
	})
}
