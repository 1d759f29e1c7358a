package question

import (
	"context"
	"testing"

	"forum/domain/answer"
	"forum/domain/question"
	"forum/domain/shared"
	"forum/infrastructure/persistence/memory"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	service   *ApplicationService
	questions *memory.QuestionRepository
	answers   *memory.AnswerRepository
	events    *shared.DomainEvents
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	events := shared.NewDomainEvents()
	questions := memory.NewQuestionRepository(events, memory.NewQuestionAttachmentRepository())
	answers := memory.NewAnswerRepository(events, memory.NewAnswerAttachmentRepository())
	t.Cleanup(events.ClearSubscriptions)

	return &testEnv{
		service:   NewApplicationService(questions, answers, memory.NewUnitOfWork()),
		questions: questions,
		answers:   answers,
		events:    events,
	}
}

func (env *testEnv) seedAnswer(t *testing.T, questionID shared.UniqueEntityID) *answer.Answer {
	t.Helper()
	a := answer.NewAnswer(answer.Props{AuthorID: "instructor-1", QuestionID: questionID, Content: "42"}, "")
	require.NoError(t, env.answers.Create(context.Background(), a))
	return a
}

func TestCreateQuestion(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		AuthorID: "1",
		Title:    "Nova pergunta",
		Content:  "Conteúdo da pergunta",
	})
	require.NoError(t, err)
	require.False(t, resp.Question.ID().IsZero())
	require.Equal(t, "nova-pergunta", resp.Question.Slug().Value())
	require.Equal(t, 1, env.questions.Len())
	require.Equal(t, resp.Question.ID(), env.questions.Items()[0].ID())
}

func TestChooseBestAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var chosen []*question.QuestionBestAnswerChosenEvent
	require.NoError(t, env.events.Register(question.EventBestAnswerChosen, shared.NewFuncHandler("capture",
		func(_ context.Context, event shared.DomainEvent) error {
			chosen = append(chosen, event.(*question.QuestionBestAnswerChosenEvent))
			return nil
		})))

	created, err := env.service.CreateQuestion(ctx, CreateQuestionRequest{AuthorID: "author-1", Title: "How?", Content: "?"})
	require.NoError(t, err)
	questionID := created.Question.ID()
	a := env.seedAnswer(t, questionID)

	resp, err := env.service.ChooseBestAnswer(ctx, ChooseBestAnswerRequest{
		QuestionID: questionID.String(),
		AuthorID:   "author-1",
		AnswerID:   a.ID().String(),
	})
	require.NoError(t, err)
	require.Equal(t, a.ID(), resp.Question.BestAnswerID())

	require.Len(t, chosen, 1)
	require.Equal(t, questionID, chosen[0].QuestionID())
	require.Equal(t, a.ID(), chosen[0].BestAnswerID())
	require.Empty(t, resp.Question.DomainEvents())
}

func TestChooseBestAnswerRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreateQuestion(ctx, CreateQuestionRequest{AuthorID: "author-1", Title: "How?", Content: "?"})
	require.NoError(t, err)
	questionID := created.Question.ID().String()

	own := env.seedAnswer(t, created.Question.ID())
	foreign := env.seedAnswer(t, "another-question")

	tests := []struct {
		name    string
		req     ChooseBestAnswerRequest
		wantErr error
	}{
		{"not the author", ChooseBestAnswerRequest{QuestionID: questionID, AuthorID: "intruder", AnswerID: own.ID().String()}, shared.ErrForbidden},
		{"missing question", ChooseBestAnswerRequest{QuestionID: "missing", AuthorID: "author-1", AnswerID: own.ID().String()}, shared.ErrNotFound},
		{"missing answer", ChooseBestAnswerRequest{QuestionID: questionID, AuthorID: "author-1", AnswerID: "missing"}, shared.ErrNotFound},
		{"answer of another question", ChooseBestAnswerRequest{QuestionID: questionID, AuthorID: "author-1", AnswerID: foreign.ID().String()}, question.ErrAnswerOfAnotherQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.ChooseBestAnswer(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := env.questions.FindByID(ctx, created.Question.ID())
	require.NoError(t, err)
	require.True(t, stored.BestAnswerID().IsZero())
}

func TestEditQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreateQuestion(ctx, CreateQuestionRequest{AuthorID: "author-1", Title: "Old title", Content: "old"})
	require.NoError(t, err)
	id := created.Question.ID().String()

	resp, err := env.service.EditQuestion(ctx, EditQuestionRequest{QuestionID: id, AuthorID: "author-1", Title: "Brand New Title"})
	require.NoError(t, err)
	require.Equal(t, "brand-new-title", resp.Question.Slug().Value())
	require.Equal(t, "old", resp.Question.Content(), "空字段保持不变")
	require.False(t, resp.Question.UpdatedAt().IsZero())

	resp, err = env.service.EditQuestion(ctx, EditQuestionRequest{QuestionID: id, AuthorID: "author-1", Content: "  new content  "})
	require.NoError(t, err)
	require.Equal(t, "new content", resp.Question.Content())
	require.Equal(t, "Brand New Title", resp.Question.Title())

	found, err := env.service.GetQuestionBySlug(ctx, "brand-new-title")
	require.NoError(t, err)
	require.Equal(t, created.Question.ID(), found.Question.ID())
	_, err = env.service.GetQuestionBySlug(ctx, "old-title")
	require.ErrorIs(t, err, shared.ErrNotFound)

	tests := []struct {
		name    string
		req     EditQuestionRequest
		wantErr error
	}{
		{"nothing to change", EditQuestionRequest{QuestionID: id, AuthorID: "author-1", Title: " "}, shared.ErrInvalidInput},
		{"not the author", EditQuestionRequest{QuestionID: id, AuthorID: "intruder", Title: "Hijacked"}, question.ErrNotAuthor},
		{"missing question", EditQuestionRequest{QuestionID: "missing", AuthorID: "author-1", Title: "x"}, shared.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.EditQuestion(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := env.questions.FindByID(ctx, created.Question.ID())
	require.NoError(t, err)
	require.Equal(t, "Brand New Title", stored.Title())
}

func TestDeleteQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreateQuestion(ctx, CreateQuestionRequest{AuthorID: "author-1", Title: "t", Content: "c"})
	require.NoError(t, err)
	id := created.Question.ID().String()

	require.ErrorIs(t, env.service.DeleteQuestion(ctx, DeleteQuestionRequest{QuestionID: id, AuthorID: "intruder"}), shared.ErrForbidden)
	require.NoError(t, env.service.DeleteQuestion(ctx, DeleteQuestionRequest{QuestionID: id, AuthorID: "author-1"}))
	require.Zero(t, env.questions.Len())
	require.ErrorIs(t, env.service.DeleteQuestion(ctx, DeleteQuestionRequest{QuestionID: id, AuthorID: "author-1"}), shared.ErrNotFound)
}

func TestGetQuestionBySlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreateQuestion(ctx, CreateQuestionRequest{AuthorID: "a", Title: "An Example Title!", Content: "c"})
	require.NoError(t, err)

	resp, err := env.service.GetQuestionBySlug(ctx, "an-example-title")
	require.NoError(t, err)
	require.Equal(t, created.Question.ID(), resp.Question.ID())

	_, err = env.service.GetQuestionBySlug(ctx, "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFetchRecentQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.service.CreateQuestion(ctx, CreateQuestionRequest{AuthorID: "a", Title: "t", Content: "c"})
		require.NoError(t, err)
	}

	resp, err := env.service.FetchRecentQuestions(ctx, FetchRecentQuestionsRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 3)
	require.Equal(t, 1, resp.Page)

	empty, err := env.service.FetchRecentQuestions(ctx, FetchRecentQuestionsRequest{Page: 2})
	require.NoError(t, err)
	require.Empty(t, empty.Questions)

	dtos := ToDTOs(resp.Questions)
	require.Len(t, dtos, 3)
	require.Equal(t, "t", dtos[0].Slug)
}
