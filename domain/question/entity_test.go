package question

import (
	"strings"
	"testing"

	"forum/domain/shared"

	"github.com/stretchr/testify/require"
)

func TestNewQuestionDerivesSlug(t *testing.T) {
	q := NewQuestion(Props{AuthorID: "author-1", Title: "An Example Title!", Content: "body"}, "")

	require.False(t, q.ID().IsZero())
	require.Equal(t, "an-example-title", q.Slug().Value())
	require.Empty(t, q.DomainEvents(), "创建提问不记录事件")
}

func TestNewQuestionKeepsGivenID(t *testing.T) {
	q := NewQuestion(Props{Title: "t"}, "question-1")
	require.Equal(t, shared.UniqueEntityID("question-1"), q.ID())
}

func TestSetTitleUpdatesSlug(t *testing.T) {
	q := NewQuestion(Props{Title: "Old title"}, "")
	q.SetTitle("New Title")

	require.Equal(t, "New Title", q.Title())
	require.Equal(t, "new-title", q.Slug().Value())
	require.False(t, q.UpdatedAt().IsZero())
}

func TestChooseBestAnswerRecordsEvent(t *testing.T) {
	q := NewQuestion(Props{AuthorID: "author-1", Title: "t"}, "")

	q.ChooseBestAnswer("answer-1")
	require.Equal(t, shared.UniqueEntityID("answer-1"), q.BestAnswerID())

	events := q.DomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*QuestionBestAnswerChosenEvent)
	require.True(t, ok)
	require.Equal(t, EventBestAnswerChosen, event.EventName())
	require.Equal(t, q.ID(), event.GetAggregateID())
	require.Equal(t, shared.UniqueEntityID("answer-1"), event.BestAnswerID())

	// 选择同一个回答不重复记录
	q.ChooseBestAnswer("answer-1")
	require.Len(t, q.DomainEvents(), 1)

	q.ChooseBestAnswer("answer-2")
	require.Len(t, q.DomainEvents(), 2)
}

func TestExcerpt(t *testing.T) {
	short := NewQuestion(Props{Title: "t", Content: "short"}, "")
	require.Equal(t, "short", short.Excerpt())

	long := NewQuestion(Props{Title: "t", Content: strings.Repeat("é", 130)}, "")
	require.Equal(t, strings.Repeat("é", 120)+"...", long.Excerpt())
}

func TestRebuildFromDTO(t *testing.T) {
	q := RebuildFromDTO(ReconstructionDTO{
		ID:           "question-1",
		AuthorID:     "author-1",
		BestAnswerID: "answer-1",
		Title:        "Title",
		Content:      "content",
		Slug:         "title",
	})

	require.Equal(t, shared.UniqueEntityID("question-1"), q.ID())
	require.True(t, q.IsAuthor("author-1"))
	require.Equal(t, "title", q.Slug().Value())
	require.Empty(t, q.DomainEvents())
}
