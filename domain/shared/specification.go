package shared

import (
	"context"
)

// Specification defines the interface for domain specifications
// A specification encapsulates business rules for querying entities
// In-memory repositories evaluate it directly, GORM repositories translate it to a WHERE clause
type Specification[T any] interface {
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

// ============================================================================
// Composite Specifications
// ============================================================================

// AndSpecification represents the logical AND of two specifications
type AndSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

// IsSatisfiedBy returns true if both left and right specifications are satisfied
func (spec AndSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) && spec.Right.IsSatisfiedBy(ctx, entity)
}

// And creates a new AndSpecification
func And[T any](left, right Specification[T]) Specification[T] {
	return AndSpecification[T]{Left: left, Right: right}
}

// NotSpecification represents the logical NOT of a specification
type NotSpecification[T any] struct {
	Spec Specification[T]
}

// IsSatisfiedBy returns true if the inner specification is NOT satisfied
func (spec NotSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return !spec.Spec.IsSatisfiedBy(ctx, entity)
}

// Not creates a new NotSpecification
func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{Spec: inner}
}

// Filter returns the entities satisfying spec, preserving input order
func Filter[T any](ctx context.Context, entities []T, spec Specification[T]) []T {
	result := make([]T, 0, len(entities))
	for _, e := range entities {
		if spec == nil || spec.IsSatisfiedBy(ctx, e) {
			result = append(result, e)
		}
	}
	return result
}
