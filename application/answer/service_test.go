package answer

import (
	"context"
	"testing"

	"forum/domain/answer"
	"forum/domain/attachment"
	"forum/domain/shared"
	"forum/infrastructure/persistence/memory"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	service     *ApplicationService
	answers     *memory.AnswerRepository
	attachments *memory.AnswerAttachmentRepository
	events      *shared.DomainEvents
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	events := shared.NewDomainEvents()
	attachments := memory.NewAnswerAttachmentRepository()
	answers := memory.NewAnswerRepository(events, attachments)
	t.Cleanup(events.ClearSubscriptions)

	return &testEnv{
		service:     NewApplicationService(answers, memory.NewUnitOfWork()),
		answers:     answers,
		attachments: attachments,
		events:      events,
	}
}

func TestAnswerQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var created []*answer.AnswerCreatedEvent
	require.NoError(t, env.events.Register(answer.EventAnswerCreated, shared.NewFuncHandler("capture",
		func(_ context.Context, event shared.DomainEvent) error {
			created = append(created, event.(*answer.AnswerCreatedEvent))
			return nil
		})))

	resp, err := env.service.AnswerQuestion(ctx, AnswerQuestionRequest{
		InstructorID: "1",
		QuestionID:   "1",
		Content:      "Nova resposta",
	})
	require.NoError(t, err)
	require.Equal(t, "Nova resposta", resp.Answer.Content())
	require.Equal(t, 1, env.answers.Len())
	require.Equal(t, resp.Answer.ID(), env.answers.Items()[0].ID())

	require.Len(t, created, 1)
	require.Equal(t, resp.Answer.ID(), created[0].GetAggregateID())
	require.Equal(t, shared.UniqueEntityID("1"), created[0].QuestionID())
	t.Log("✓ 回答已保存，answer.created 已投递")
}

func TestEditAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.AnswerQuestion(ctx, AnswerQuestionRequest{InstructorID: "author-1", QuestionID: "q-1", Content: "old"})
	require.NoError(t, err)

	edited, err := env.service.EditAnswer(ctx, EditAnswerRequest{AnswerID: resp.Answer.ID().String(), AuthorID: "author-1", Content: "new"})
	require.NoError(t, err)
	require.Equal(t, "new", edited.Answer.Content())

	_, err = env.service.EditAnswer(ctx, EditAnswerRequest{AnswerID: resp.Answer.ID().String(), AuthorID: "someone-else", Content: "hacked"})
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.ErrorIs(t, err, answer.ErrNotAuthor)

	stored, err := env.answers.FindByID(ctx, resp.Answer.ID())
	require.NoError(t, err)
	require.Equal(t, "new", stored.Content())

	_, err = env.service.EditAnswer(ctx, EditAnswerRequest{AnswerID: "missing", AuthorID: "author-1", Content: "x"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.AnswerQuestion(ctx, AnswerQuestionRequest{InstructorID: "author-1", QuestionID: "q-1", Content: "42"})
	require.NoError(t, err)
	answerID := resp.Answer.ID()
	require.NoError(t, env.attachments.Create(ctx, attachment.NewAnswerAttachment("file-1", answerID, "")))

	err = env.service.DeleteAnswer(ctx, DeleteAnswerRequest{AnswerID: answerID.String(), AuthorID: "someone-else"})
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.Equal(t, 1, env.answers.Len())

	require.NoError(t, env.service.DeleteAnswer(ctx, DeleteAnswerRequest{AnswerID: answerID.String(), AuthorID: "author-1"}))
	require.Zero(t, env.answers.Len())
	require.Zero(t, env.attachments.Len())
	require.Equal(t, []shared.UniqueEntityID{answerID}, env.attachments.DeleteCalls())
}

func TestFetchQuestionAnswers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 22; i++ {
		_, err := env.service.AnswerQuestion(ctx, AnswerQuestionRequest{InstructorID: "a", QuestionID: "q-1", Content: "x"})
		require.NoError(t, err)
	}

	first, err := env.service.FetchQuestionAnswers(ctx, FetchQuestionAnswersRequest{QuestionID: "q-1", Page: 1})
	require.NoError(t, err)
	require.Len(t, first.Answers, 20)

	second, err := env.service.FetchQuestionAnswers(ctx, FetchQuestionAnswersRequest{QuestionID: "q-1", Page: 2})
	require.NoError(t, err)
	require.Len(t, second.Answers, 2)

	other, err := env.service.FetchQuestionAnswers(ctx, FetchQuestionAnswersRequest{QuestionID: "q-2", Page: 1})
	require.NoError(t, err)
	require.Empty(t, other.Answers)
}

func TestToDTO(t *testing.T) {
	a := answer.NewAnswer(answer.Props{AuthorID: "author-1", QuestionID: "q-1", Content: "42"}, "")
	dto := ToDTO(a)

	require.Equal(t, a.ID().String(), dto.ID)
	require.Equal(t, "q-1", dto.QuestionID)
	require.Nil(t, dto.UpdatedAt)

	a.Edit("43")
	require.NotNil(t, ToDTO(a).UpdatedAt)
}
