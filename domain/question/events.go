package question

import (
	"time"

	"forum/domain/shared"
)

// EventBestAnswerChosen 事件类型
const EventBestAnswerChosen = "question.best_answer_chosen"

// QuestionBestAnswerChosenEvent Best answer chosen event
type QuestionBestAnswerChosenEvent struct {
	questionID   shared.UniqueEntityID
	bestAnswerID shared.UniqueEntityID
	occurredOn   time.Time
}

func NewQuestionBestAnswerChosenEvent(questionID, bestAnswerID shared.UniqueEntityID) *QuestionBestAnswerChosenEvent {
	return &QuestionBestAnswerChosenEvent{
		questionID:   questionID,
		bestAnswerID: bestAnswerID,
		occurredOn:   time.Now(),
	}
}

func (e *QuestionBestAnswerChosenEvent) EventName() string                     { return EventBestAnswerChosen }
func (e *QuestionBestAnswerChosenEvent) OccurredOn() time.Time                 { return e.occurredOn }
func (e *QuestionBestAnswerChosenEvent) GetAggregateID() shared.UniqueEntityID { return e.questionID }
func (e *QuestionBestAnswerChosenEvent) QuestionID() shared.UniqueEntityID     { return e.questionID }
func (e *QuestionBestAnswerChosenEvent) BestAnswerID() shared.UniqueEntityID   { return e.bestAnswerID }
