package answer

import (
	"context"

	"forum/domain/shared"
)

// ByQuestionIDSpecification filters answers by the question they belong to
type ByQuestionIDSpecification struct {
	QuestionID shared.UniqueEntityID
}

// IsSatisfiedBy returns true if the answer belongs to the question
func (spec ByQuestionIDSpecification) IsSatisfiedBy(ctx context.Context, entity *Answer) bool {
	return entity.QuestionID().Equals(spec.QuestionID)
}

// NewByQuestionIDSpecification creates a specification to filter by question
func NewByQuestionIDSpecification(questionID shared.UniqueEntityID) shared.Specification[*Answer] {
	return ByQuestionIDSpecification{QuestionID: questionID}
}
