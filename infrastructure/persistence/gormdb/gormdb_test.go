package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"forum/domain/answer"
	"forum/domain/attachment"
	"forum/domain/question"
	"forum/domain/shared"
	"forum/infrastructure/persistence"
	"forum/infrastructure/persistence/retry"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db                  *gorm.DB
	events              *shared.DomainEvents
	questions           *QuestionRepository
	answers             *AnswerRepository
	questionAttachments *QuestionAttachmentRepository
	answerAttachments   *AnswerAttachmentRepository
	uow                 *UnitOfWork
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &Config{
		Driver:     DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		LogLevel:   "silent",
	}
	db, err := cfg.Connect()
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	events := shared.NewDomainEvents()
	questionAttachments := NewQuestionAttachmentRepository(db)
	answerAttachments := NewAnswerAttachmentRepository(db)

	noRetry := retry.DefaultConfig
	noRetry.Enabled = false

	return &fixture{
		db:                  db,
		events:              events,
		questions:           NewQuestionRepository(db, events, questionAttachments),
		answers:             NewAnswerRepository(db, events, answerAttachments),
		questionAttachments: questionAttachments,
		answerAttachments:   answerAttachments,
		uow:                 NewUnitOfWork(db, noRetry),
	}
}

func (f *fixture) countingHandler(t *testing.T, eventName string) *int {
	t.Helper()
	calls := new(int)
	require.NoError(t, f.events.Register(eventName, shared.NewFuncHandler("counter-"+eventName,
		func(context.Context, shared.DomainEvent) error {
			*calls++
			return nil
		})))
	return calls
}

func TestAnswerCreateAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	calls := f.countingHandler(t, answer.EventAnswerCreated)

	a := answer.NewAnswer(answer.Props{AuthorID: "author-1", QuestionID: "question-1", Content: "42"}, "")
	require.NoError(t, f.answers.Create(ctx, a))

	require.Equal(t, 1, *calls)
	require.Empty(t, a.DomainEvents())

	found, err := f.answers.FindByID(ctx, a.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "42", found.Content())
	require.Equal(t, shared.UniqueEntityID("question-1"), found.QuestionID())
	require.Empty(t, found.DomainEvents(), "重建的聚合不记录事件")

	missing, err := f.answers.FindByID(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestAnswerCreateDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.answers.Create(ctx, answer.NewAnswer(answer.Props{Content: "a"}, "answer-1")))
	err := f.answers.Create(ctx, answer.NewAnswer(answer.Props{Content: "b"}, "answer-1"))
	require.ErrorIs(t, err, shared.ErrConflict)
	require.False(t, f.events.IsMarked("answer-1"))
}

func TestAnswerSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := answer.NewAnswer(answer.Props{AuthorID: "author-1", Content: "old"}, "")
	require.NoError(t, f.answers.Create(ctx, a))

	a.Edit("new")
	require.NoError(t, f.answers.Save(ctx, a))

	found, err := f.answers.FindByID(ctx, a.ID())
	require.NoError(t, err)
	require.Equal(t, "new", found.Content())
	require.False(t, found.UpdatedAt().IsZero())

	// 内容不变时再次保存仍然成功
	require.NoError(t, f.answers.Save(ctx, found))

	missing := answer.NewAnswer(answer.Props{Content: "x"}, "")
	err = f.answers.Save(ctx, missing)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Len(t, missing.DomainEvents(), 1)
	require.False(t, f.events.IsMarked(missing.ID()))
}

func TestAnswerPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []shared.UniqueEntityID
	for i := 0; i < 45; i++ {
		a := answer.NewAnswer(answer.Props{QuestionID: "question-1", Content: fmt.Sprint(i)}, "")
		require.NoError(t, f.answers.Create(ctx, a))
		ids = append(ids, a.ID())
	}
	require.NoError(t, f.answers.Create(ctx, answer.NewAnswer(answer.Props{QuestionID: "question-2"}, "")))

	page1, err := f.answers.FindManyByQuestionID(ctx, "question-1", shared.PaginationParams{Page: 1})
	require.NoError(t, err)
	require.Len(t, page1, 20)
	require.Equal(t, ids[0], page1[0].ID())
	require.Equal(t, ids[19], page1[19].ID())

	page3, err := f.answers.FindManyByQuestionID(ctx, "question-1", shared.PaginationParams{Page: 3})
	require.NoError(t, err)
	require.Len(t, page3, 5)
	require.Equal(t, ids[40], page3[0].ID())
	require.Equal(t, ids[44], page3[4].ID())

	page4, err := f.answers.FindManyByQuestionID(ctx, "question-1", shared.PaginationParams{Page: 4})
	require.NoError(t, err)
	require.NotNil(t, page4)
	require.Empty(t, page4)

	page0, err := f.answers.FindManyByQuestionID(ctx, "question-1", shared.PaginationParams{Page: 0})
	require.NoError(t, err)
	require.Empty(t, page0)
}

func TestAnswerDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := answer.NewAnswer(answer.Props{Content: "42"}, "")
	require.NoError(t, f.answers.Create(ctx, a))
	require.NoError(t, f.answerAttachments.Create(ctx, attachment.NewAnswerAttachment("file-1", a.ID(), "")))
	require.NoError(t, f.answerAttachments.Create(ctx, attachment.NewAnswerAttachment("file-2", a.ID(), "")))

	require.NoError(t, f.answers.Delete(ctx, a))

	found, err := f.answers.FindByID(ctx, a.ID())
	require.NoError(t, err)
	require.Nil(t, found)

	remaining, err := f.answerAttachments.FindManyByAnswerID(ctx, a.ID())
	require.NoError(t, err)
	require.Empty(t, remaining)

	require.ErrorIs(t, f.answers.Delete(ctx, a), shared.ErrNotFound)
}

type failingAnswerAttachments struct {
	attachment.AnswerAttachmentRepository
	err error
}

func (f failingAnswerAttachments) DeleteManyByAnswerID(context.Context, shared.UniqueEntityID) error {
	return f.err
}

func TestAnswerDeleteCascadeFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	down := errors.New("attachments down")
	repo := NewAnswerRepository(f.db, f.events, failingAnswerAttachments{err: down})

	a := answer.NewAnswer(answer.Props{Content: "42"}, "")
	require.NoError(t, repo.Create(ctx, a))

	err := repo.Delete(ctx, a)
	require.ErrorIs(t, err, shared.ErrCascadeFailure)
	require.ErrorIs(t, err, down)

	found, err := repo.FindByID(ctx, a.ID())
	require.NoError(t, err)
	require.NotNil(t, found, "级联失败时回答保持不变")
}

func TestQuestionRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chosen := f.countingHandler(t, question.EventBestAnswerChosen)

	q := question.NewQuestion(question.Props{AuthorID: "author-1", Title: "An Example Title!", Content: "body"}, "")
	require.NoError(t, f.questions.Create(ctx, q))

	bySlug, err := f.questions.FindBySlug(ctx, "an-example-title")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	require.Equal(t, q.ID(), bySlug.ID())

	bySlug.ChooseBestAnswer("answer-1")
	require.NoError(t, f.questions.Save(ctx, bySlug))
	require.Equal(t, 1, *chosen)

	reloaded, err := f.questions.FindByID(ctx, q.ID())
	require.NoError(t, err)
	require.Equal(t, shared.UniqueEntityID("answer-1"), reloaded.BestAnswerID())

	require.NoError(t, f.questionAttachments.Create(ctx, attachment.NewQuestionAttachment("file-1", q.ID(), "")))
	require.NoError(t, f.questions.Delete(ctx, reloaded))

	gone, err := f.questions.FindBySlug(ctx, "an-example-title")
	require.NoError(t, err)
	require.Nil(t, gone)

	attachments, err := f.questionAttachments.FindManyByQuestionID(ctx, q.ID())
	require.NoError(t, err)
	require.Empty(t, attachments)
}

func TestQuestionFindManyRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []shared.UniqueEntityID
	for i := 0; i < 22; i++ {
		q := question.NewQuestion(question.Props{Title: fmt.Sprintf("question %d", i)}, "")
		require.NoError(t, f.questions.Create(ctx, q))
		ids = append(ids, q.ID())
	}

	page1, err := f.questions.FindManyRecent(ctx, shared.PaginationParams{Page: 1})
	require.NoError(t, err)
	require.Len(t, page1, 20)
	require.Equal(t, ids[21], page1[0].ID())

	page2, err := f.questions.FindManyRecent(ctx, shared.PaginationParams{Page: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.Equal(t, ids[0], page2[1].ID())
}

func TestUnitOfWorkDispatchesAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	calls := f.countingHandler(t, answer.EventAnswerCreated)

	a := answer.NewAnswer(answer.Props{QuestionID: "question-1", Content: "42"}, "")
	err := f.uow.Execute(ctx, func(ctx context.Context) error {
		require.NoError(t, f.answers.Create(ctx, a))
		require.Zero(t, *calls, "提交前不调度")
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 1, *calls)
	require.Empty(t, a.DomainEvents())
}

func TestUnitOfWorkRollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	calls := f.countingHandler(t, answer.EventAnswerCreated)

	failed := errors.New("later step failed")
	a := answer.NewAnswer(answer.Props{Content: "42"}, "")
	err := f.uow.Execute(ctx, func(ctx context.Context) error {
		require.NoError(t, f.answers.Create(ctx, a))
		return failed
	})

	require.ErrorIs(t, err, failed)
	require.Zero(t, *calls)
	require.Len(t, a.DomainEvents(), 1, "回滚后事件队列保持不变")
	require.False(t, f.events.IsMarked(a.ID()))

	found, err := f.answers.FindByID(ctx, a.ID())
	require.NoError(t, err)
	require.Nil(t, found)

	// 重试时事件仍能投递
	require.NoError(t, f.answers.Create(ctx, a))
	require.Equal(t, 1, *calls)
}

func TestConcurrentUnitsOfWorkOnSameQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.questions.Create(ctx, question.NewQuestion(question.Props{AuthorID: "author-1", Title: "Shared"}, "question-1")))

	var delivered []shared.UniqueEntityID
	require.NoError(t, f.events.Register(question.EventBestAnswerChosen, shared.NewFuncHandler("best-answer",
		func(_ context.Context, event shared.DomainEvent) error {
			delivered = append(delivered, event.(*question.QuestionBestAnswerChosenEvent).BestAnswerID())
			return nil
		})))

	// 两个请求各自从数据库加载同一条提问
	first, err := f.questions.FindByID(ctx, "question-1")
	require.NoError(t, err)
	second, err := f.questions.FindByID(ctx, "question-1")
	require.NoError(t, err)

	firstCtx, firstQueue := persistence.ContextWithDispatchQueue(ctx)
	secondCtx, secondQueue := persistence.ContextWithDispatchQueue(ctx)

	first.ChooseBestAnswer("answer-a")
	second.ChooseBestAnswer("answer-b")
	require.NoError(t, f.questions.Save(firstCtx, first))
	require.NoError(t, f.questions.Save(secondCtx, second))
	require.Empty(t, delivered, "提交前不调度")

	require.NoError(t, firstQueue.Flush(ctx))
	require.Equal(t, []shared.UniqueEntityID{"answer-a"}, delivered)
	require.Empty(t, first.DomainEvents())
	require.Len(t, second.DomainEvents(), 1)

	secondQueue.Discard()
	require.Equal(t, []shared.UniqueEntityID{"answer-a"}, delivered)
	require.Len(t, second.DomainEvents(), 1, "回滚的实例保留事件")
	require.False(t, f.events.IsMarked("question-1"))
	t.Log("✓ 每个工作单元只调度自己写入的实例")
}

func TestConfigDSN(t *testing.T) {
	pg := &Config{Driver: DriverPostgres, Host: "db", Port: "5432", Username: "forum", Password: "secret", Database: "forum"}
	require.Equal(t, "host=db port=5432 user=forum password=secret dbname=forum sslmode=disable TimeZone=UTC", pg.DSN())

	lite := &Config{Driver: DriverSQLite, SQLitePath: "forum.db"}
	require.Equal(t, "forum.db", lite.DSN())
	lite.applyDefaults()
	require.Equal(t, 1, lite.MaxOpenConns)

	_, err := (&Config{Driver: "oracle"}).dialector()
	require.Error(t, err)
}
