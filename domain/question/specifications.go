package question

import (
	"context"

	"forum/domain/shared"
)

// BySlugSpecification filters questions by slug
type BySlugSpecification struct {
	Slug string
}

// IsSatisfiedBy returns true if the question has the specified slug
func (spec BySlugSpecification) IsSatisfiedBy(ctx context.Context, entity *Question) bool {
	return entity.Slug().Value() == spec.Slug
}

// ByAuthorIDSpecification filters questions by author
type ByAuthorIDSpecification struct {
	AuthorID shared.UniqueEntityID
}

// IsSatisfiedBy returns true if the question was written by the author
func (spec ByAuthorIDSpecification) IsSatisfiedBy(ctx context.Context, entity *Question) bool {
	return entity.IsAuthor(spec.AuthorID)
}

// NewBySlugSpecification creates a specification to filter by slug
func NewBySlugSpecification(slug string) shared.Specification[*Question] {
	return BySlugSpecification{Slug: slug}
}
