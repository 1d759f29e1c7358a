/*
Package specification 将领域规约翻译为 GORM 查询条件
*/
package specification

import (
	"forum/domain/answer"
	"forum/domain/question"
	"forum/domain/shared"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Translate converts a domain specification to a GORM scope
// 不支持的规约返回 false，调用方应退回到内存过滤或报错
func Translate[T any](spec shared.Specification[T]) (func(*gorm.DB) *gorm.DB, bool) {
	if spec == nil {
		return func(db *gorm.DB) *gorm.DB { return db }, true
	}
	expr, ok := expression(spec)
	if !ok {
		return nil, false
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Where{Exprs: []clause.Expression{expr}})
	}, true
}

// expression 对 any 做类型分支：具体规约只实现了某个实例化的 Specification[T]
func expression(spec any) (clause.Expression, bool) {
	switch s := spec.(type) {
	case shared.AndSpecification[*question.Question]:
		return and(s.Left, s.Right)
	case shared.AndSpecification[*answer.Answer]:
		return and(s.Left, s.Right)
	case shared.NotSpecification[*question.Question]:
		return not(s.Spec)
	case shared.NotSpecification[*answer.Answer]:
		return not(s.Spec)

	case question.BySlugSpecification:
		return clause.Eq{Column: "slug", Value: s.Slug}, true
	case question.ByAuthorIDSpecification:
		return clause.Eq{Column: "author_id", Value: s.AuthorID.String()}, true
	case answer.ByQuestionIDSpecification:
		return clause.Eq{Column: "question_id", Value: s.QuestionID.String()}, true
	}

	return nil, false
}

func and(left, right any) (clause.Expression, bool) {
	l, ok := expression(left)
	if !ok {
		return nil, false
	}
	r, ok := expression(right)
	if !ok {
		return nil, false
	}
	return clause.And(l, r), true
}

func not(inner any) (clause.Expression, bool) {
	expr, ok := expression(inner)
	if !ok {
		return nil, false
	}
	return clause.Not(expr), true
}
