package answer

import (
	"time"

	"forum/domain/shared"
)

// EventAnswerCreated 事件类型
const EventAnswerCreated = "answer.created"

// AnswerCreatedEvent Answer created event
type AnswerCreatedEvent struct {
	answerID   shared.UniqueEntityID
	questionID shared.UniqueEntityID
	authorID   shared.UniqueEntityID
	occurredOn time.Time
}

func NewAnswerCreatedEvent(a *Answer) *AnswerCreatedEvent {
	return &AnswerCreatedEvent{
		answerID:   a.ID(),
		questionID: a.QuestionID(),
		authorID:   a.AuthorID(),
		occurredOn: time.Now(),
	}
}

func (e *AnswerCreatedEvent) EventName() string                     { return EventAnswerCreated }
func (e *AnswerCreatedEvent) OccurredOn() time.Time                 { return e.occurredOn }
func (e *AnswerCreatedEvent) GetAggregateID() shared.UniqueEntityID { return e.answerID }
func (e *AnswerCreatedEvent) AnswerID() shared.UniqueEntityID       { return e.answerID }
func (e *AnswerCreatedEvent) QuestionID() shared.UniqueEntityID     { return e.questionID }
func (e *AnswerCreatedEvent) AuthorID() shared.UniqueEntityID       { return e.authorID }
