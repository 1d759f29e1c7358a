package po

import (
	"time"

	"forum/domain/question"
)

type QuestionPO struct {
	ID           string     `gorm:"primaryKey;size:64"`
	AuthorID     string     `gorm:"size:64;not null;index"`
	BestAnswerID string     `gorm:"size:64"`
	Title        string     `gorm:"size:255;not null"`
	Content      string     `gorm:"type:text;not null"`
	Slug         string     `gorm:"size:255;not null;index"`
	CreatedAt    time.Time  `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false"`
}

func (QuestionPO) TableName() string {
	return "questions"
}

func FromQuestionDomain(q *question.Question) *QuestionPO {
	return &QuestionPO{
		ID:           q.ID().String(),
		AuthorID:     q.AuthorID().String(),
		BestAnswerID: q.BestAnswerID().String(),
		Title:        q.Title(),
		Content:      q.Content(),
		Slug:         q.Slug().Value(),
		CreatedAt:    q.CreatedAt(),
		UpdatedAt:    optionalTime(q.UpdatedAt()),
	}
}

func (po *QuestionPO) ToDomain() *question.Question {
	return question.RebuildFromDTO(question.ReconstructionDTO{
		ID:           po.ID,
		AuthorID:     po.AuthorID,
		BestAnswerID: po.BestAnswerID,
		Title:        po.Title,
		Content:      po.Content,
		Slug:         po.Slug,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    valueOf(po.UpdatedAt),
	})
}

// optionalTime 零值时间存为 NULL
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func valueOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
