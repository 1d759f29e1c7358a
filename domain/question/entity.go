/*
Package question Question subdomain

Question 是论坛的提问聚合根：标题决定 Slug，作者可以从回答中选出最佳回答。
选出最佳回答会记录 QuestionBestAnswerChosenEvent，由仓储在保存成功后调度。
*/
package question

import (
	"time"
	"unicode/utf8"

	"forum/domain/shared"
)

// EntityName 用于错误信息与日志
const EntityName = "question"

// Question 提问聚合根
// 所有字段私有，通过行为方法修改
type Question struct {
	*shared.AggregateRoot

	authorID     shared.UniqueEntityID
	bestAnswerID shared.UniqueEntityID
	title        string
	content      string
	slug         Slug
	createdAt    time.Time
	updatedAt    time.Time
}

// Props 创建提问所需的属性
type Props struct {
	AuthorID shared.UniqueEntityID
	Title    string
	Content  string
}

// NewQuestion 创建提问聚合根
// id 为空时生成新标识；Slug 由标题派生
func NewQuestion(props Props, id shared.UniqueEntityID) *Question {
	now := time.Now()
	return &Question{
		AggregateRoot: shared.NewAggregateRoot(id),
		authorID:      props.AuthorID,
		title:         props.Title,
		content:       props.Content,
		slug:          SlugFromText(props.Title),
		createdAt:     now,
	}
}

// ============================================================================
// 领域行为方法
// ============================================================================

// SetTitle 更新标题，同时重新生成 Slug
func (q *Question) SetTitle(title string) {
	q.title = title
	q.slug = SlugFromText(title)
	q.touch()
}

// SetContent 更新内容
func (q *Question) SetContent(content string) {
	q.content = content
	q.touch()
}

// ChooseBestAnswer 选择最佳回答
// 最佳回答发生变化时记录 QuestionBestAnswerChosenEvent
func (q *Question) ChooseBestAnswer(answerID shared.UniqueEntityID) {
	if answerID.IsZero() || answerID.Equals(q.bestAnswerID) {
		return
	}
	q.bestAnswerID = answerID
	q.touch()
	q.AddDomainEvent(NewQuestionBestAnswerChosenEvent(q.ID(), answerID))
}

// IsAuthor 判断给定用户是否为作者
func (q *Question) IsAuthor(authorID shared.UniqueEntityID) bool {
	return q.authorID.Equals(authorID)
}

// Excerpt 内容摘要（前 120 个字符）
func (q *Question) Excerpt() string {
	if utf8.RuneCountInString(q.content) <= 120 {
		return q.content
	}
	runes := []rune(q.content)
	return string(runes[:120]) + "..."
}

func (q *Question) touch() {
	q.updatedAt = time.Now()
}

// ============================================================================
// Getters
// ============================================================================

func (q *Question) AuthorID() shared.UniqueEntityID     { return q.authorID }
func (q *Question) BestAnswerID() shared.UniqueEntityID { return q.bestAnswerID }
func (q *Question) Title() string                       { return q.title }
func (q *Question) Content() string                     { return q.content }
func (q *Question) Slug() Slug                          { return q.slug }
func (q *Question) CreatedAt() time.Time                { return q.createdAt }
func (q *Question) UpdatedAt() time.Time                { return q.updatedAt }

// ReconstructionDTO 提问重建数据传输对象
// ⚠️ 注意：仅应在仓储实现中使用，不应在应用层调用
type ReconstructionDTO struct {
	ID           string
	AuthorID     string
	BestAnswerID string
	Title        string
	Content      string
	Slug         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RebuildFromDTO 从DTO重建Question聚合根，不记录任何事件
func RebuildFromDTO(dto ReconstructionDTO) *Question {
	return &Question{
		AggregateRoot: shared.NewAggregateRoot(shared.UniqueEntityID(dto.ID)),
		authorID:      shared.UniqueEntityID(dto.AuthorID),
		bestAnswerID:  shared.UniqueEntityID(dto.BestAnswerID),
		title:         dto.Title,
		content:       dto.Content,
		slug:          NewSlug(dto.Slug),
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

// 编译时检查 Question 实现了 Aggregate 接口
var _ shared.Aggregate = (*Question)(nil)
