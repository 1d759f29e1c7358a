/*
Package answer Answer subdomain

Answer 是对某个提问的回答，作为独立的聚合根存在，通过 questionID 引用所属提问。
新建的回答记录 AnswerCreatedEvent；从存储重建时不记录事件。
*/
package answer

import (
	"time"
	"unicode/utf8"

	"forum/domain/shared"
)

// EntityName 用于错误信息与日志
const EntityName = "answer"

// Answer 回答聚合根
type Answer struct {
	*shared.AggregateRoot

	authorID   shared.UniqueEntityID
	questionID shared.UniqueEntityID
	content    string
	createdAt  time.Time
	updatedAt  time.Time
}

// Props 创建回答所需的属性
type Props struct {
	AuthorID   shared.UniqueEntityID
	QuestionID shared.UniqueEntityID
	Content    string
}

// NewAnswer 创建回答聚合根
// id 为空时生成新标识并记录 AnswerCreatedEvent；传入 id 表示沿用已有标识
func NewAnswer(props Props, id shared.UniqueEntityID) *Answer {
	a := &Answer{
		AggregateRoot: shared.NewAggregateRoot(id),
		authorID:      props.AuthorID,
		questionID:    props.QuestionID,
		content:       props.Content,
		createdAt:     time.Now(),
	}

	if id.IsZero() {
		a.AddDomainEvent(NewAnswerCreatedEvent(a))
	}

	return a
}

// ============================================================================
// 领域行为方法
// ============================================================================

// Edit 修改回答内容
func (a *Answer) Edit(content string) {
	a.content = content
	a.updatedAt = time.Now()
}

// IsAuthor 判断给定用户是否为作者
func (a *Answer) IsAuthor(authorID shared.UniqueEntityID) bool {
	return a.authorID.Equals(authorID)
}

// Excerpt 内容摘要（前 120 个字符）
func (a *Answer) Excerpt() string {
	if utf8.RuneCountInString(a.content) <= 120 {
		return a.content
	}
	runes := []rune(a.content)
	return string(runes[:120]) + "..."
}

// ============================================================================
// Getters
// ============================================================================

func (a *Answer) AuthorID() shared.UniqueEntityID   { return a.authorID }
func (a *Answer) QuestionID() shared.UniqueEntityID { return a.questionID }
func (a *Answer) Content() string                   { return a.content }
func (a *Answer) CreatedAt() time.Time              { return a.createdAt }
func (a *Answer) UpdatedAt() time.Time              { return a.updatedAt }

// ReconstructionDTO 回答重建数据传输对象
// ⚠️ 注意：仅应在仓储实现中使用，不应在应用层调用
type ReconstructionDTO struct {
	ID         string
	AuthorID   string
	QuestionID string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildFromDTO 从DTO重建Answer聚合根，不记录任何事件
func RebuildFromDTO(dto ReconstructionDTO) *Answer {
	return &Answer{
		AggregateRoot: shared.NewAggregateRoot(shared.UniqueEntityID(dto.ID)),
		authorID:      shared.UniqueEntityID(dto.AuthorID),
		questionID:    shared.UniqueEntityID(dto.QuestionID),
		content:       dto.Content,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

// 编译时检查 Answer 实现了 Aggregate 接口
var _ shared.Aggregate = (*Answer)(nil)
